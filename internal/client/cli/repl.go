package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real
// App type satisfies it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Fav(ctx context.Context, arg string) error
	Unfav(ctx context.Context, arg string) error
	Favorites(ctx context.Context) error
	Filters(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to a. Unknown commands are reported back. The loop exits on
// scanner EOF or "exit"/"quit". Handler errors are printed by the handlers
// themselves; the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <id>, add, edit <id>, delete <id>, fav <id>, unfav <id>, favorites, filters, logout, reset, exit")
			} else {
				printlnFn("Available commands: (l)ist, show <id>, fav <id>, unfav <id>, favorites, filters, register, login, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "fav":
			_ = a.Fav(ctx, arg)

		case "unfav":
			_ = a.Unfav(ctx, arg)

		case "favorites":
			_ = a.Favorites(ctx)

		case "filters":
			_ = a.Filters(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
