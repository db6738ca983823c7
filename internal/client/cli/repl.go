package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	News(ctx context.Context, query string) error
	Weather(ctx context.Context, args []string) error
	Ping(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Commands that need a session are refused while logged out. Errors from
// handlers are printed and the loop continues; it ends on EOF, "exit" or
// "quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "mp %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please login first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: news [query], weather [lat lon], whoami, ping, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, ping, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "news":
			cmdErr = a.News(ctx, strings.Join(args, " "))

		case "weather":
			cmdErr = a.Weather(ctx, args)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func needsLogin(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "news", "weather":
		return true
	}
	return false
}
