package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// getStatus builds the prompt decoration: the logged-in identity and the
// time left on the session.
func (a *App) getStatus() string {
	identity, ok := a.session.Identity()
	if !ok {
		return "(guest)"
	}

	remaining := a.session.Remaining().Round(time.Second)
	return fmt.Sprintf("(%s %s)", identity.Email, remaining)
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Quoteshelf CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		log.Printf("warning: server %s is unreachable, commands will fail until it is back", a.config.ServerURL)
	}

	if err := a.authService.Restore(ctx); err != nil {
		log.Printf("error restoring session: %v", err)
	}
	if identity, ok := a.session.Identity(); ok {
		log.Printf("Welcome back, %s", identity.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
