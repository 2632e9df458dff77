package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Me(ctx context.Context) error
	Rename(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Users(ctx context.Context) error

	CreateGarden(ctx context.Context) error
	WaterGarden(ctx context.Context, gardenID string) error
	ShowGarden(ctx context.Context, gardenID string) error
	Gardens(ctx context.Context) error

	AddFlower(ctx context.Context, gardenID string) error
	UpdateFlower(ctx context.Context, flowerID string) error
	DeleteFlower(ctx context.Context, flowerID string) error
	Flowers(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: me, rename, delete-account, users, " +
		"garden-create, garden-water <id>, garden-show <id>, gardens, " +
		"flower-add [garden-id], flower-update <id>, flower-delete <id>, flowers, logout, help, exit"
)

// runREPL reads commands from in until EOF or "exit"/"quit". Command
// prompts read from the same reader, so it must not be wrapped in another
// buffer. Errors of command handlers are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, w io.Writer, statusFn func() string, in *bufio.Reader) {
	for {
		fmt.Fprintf(w, "soulbloom %s> ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		// withID runs fn with the first argument or prints usage.
		withID := func(usage string, fn func(context.Context, string) error) {
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage:", usage)
				return
			}
			_ = fn(ctx, args[0])
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)
		case "rename":
			_ = a.Rename(ctx)
		case "delete-account":
			_ = a.DeleteAccount(ctx)
		case "users":
			_ = a.Users(ctx)

		case "garden-create":
			_ = a.CreateGarden(ctx)
		case "garden-water":
			withID("garden-water <garden-id>", a.WaterGarden)
		case "garden-show":
			withID("garden-show <garden-id>", a.ShowGarden)
		case "gardens":
			_ = a.Gardens(ctx)

		case "flower-add":
			var gardenID string
			if len(args) > 0 {
				gardenID = args[0]
			}
			_ = a.AddFlower(ctx, gardenID)
		case "flower-update":
			withID("flower-update <flower-id>", a.UpdateFlower)
		case "flower-delete":
			withID("flower-delete <flower-id>", a.DeleteFlower)
		case "flowers":
			_ = a.Flowers(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
