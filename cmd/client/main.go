package main

import (
	"context"
	"log"

	"github.com/dkowalski/quoteshelf/internal/client/cli"
	"github.com/dkowalski/quoteshelf/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
