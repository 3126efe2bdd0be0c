package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkowalski/quoteshelf/internal/flagx"
	"github.com/dkowalski/quoteshelf/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. timex.Duration accepts both strings such as "1s" and integer
// nanoseconds.
type JsonConfig struct {
	ServerURL    string         `json:"server_url"`
	DatabasePath string         `json:"database_path"`
	TickInterval timex.Duration `json:"tick_interval"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags;
// if neither is set, no JSON file is loaded.
//
// The file must set every field: all fields are copied over, so a key
// omitted from the file resets that field to its zero value.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerURL = c.ServerURL
	config.DatabasePath = c.DatabasePath
	config.TickInterval = time.Duration(c.TickInterval.Duration)
}
