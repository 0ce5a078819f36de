package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Favorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Rate(ctx context.Context, args []string) error
	Prefs(ctx context.Context) error
	ToggleDark(ctx context.Context) error
	Status(ctx context.Context, args []string) error
}

const loginHint = "You are not logged in. Type 'login' first."

// runREPL reads commands line by line and dispatches them to a until input
// ends, the context is cancelled, or the user types exit/quit.
//
// whoami, profile and logout are refused with a hint when no session
// exists. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("rb (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, fav <id>, favs, rate <id> <0-5>, prefs, dark, status [-v], logout, exit")
			} else {
				printlnFn("Available commands: login [username], fav <id>, favs, rate <id> <0-5>, prefs, dark, status [-v], exit")
			}

		case "login":
			cmdErr = a.Login(ctx, args)

		case "logout", "whoami", "profile":
			if !a.isLoggedIn() {
				printlnFn(loginHint)
				continue
			}
			switch cmd {
			case "logout":
				cmdErr = a.Logout(ctx)
			case "whoami":
				cmdErr = a.WhoAmI(ctx)
			default:
				cmdErr = a.Profile(ctx)
			}

		case "fav":
			cmdErr = a.Favorite(ctx, args)

		case "favs":
			cmdErr = a.Favorites(ctx)

		case "rate":
			cmdErr = a.Rate(ctx, args)

		case "prefs":
			cmdErr = a.Prefs(ctx)

		case "dark":
			cmdErr = a.ToggleDark(ctx)

		case "status":
			cmdErr = a.Status(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
