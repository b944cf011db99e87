package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/book-collections/internal/adapter"
	"github.com/MKhiriev/book-collections/internal/logger"
)

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// App runs one subcommand per invocation.
type App struct {
	adapter adapter.ServerAdapter

	in  io.Reader
	out io.Writer
	err io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp constructs an App writing results to out and prompts to errOut.
func NewApp(serverAdapter adapter.ServerAdapter, in io.Reader, out, errOut io.Writer, logger *logger.Logger) *App {
	app := &App{
		adapter: serverAdapter,
		in:      in,
		out:     out,
		err:     errOut,
		logger:  logger,
	}

	app.commands = map[string]command{
		"register": {usage: "register -identity EMAIL [-secret PASSWORD]", run: app.register},
		"login":    {usage: "login -identity EMAIL [-secret PASSWORD]", run: app.login},
		"profile":  {usage: "profile", run: app.profile},
		"logout":   {usage: "logout", run: app.logout},
		"list":     {usage: "list [-title T] [-description D] [-book B] [-booktitle B] [-query RAW]", run: app.list},
		"add":      {usage: "add -title T -description D [-published-at RFC3339] [-book B ...]", run: app.add},
		"update":   {usage: "update -id ID -title T -description D [-published-at RFC3339] [-book B ...]", run: app.update},
		"delete":   {usage: "delete -id ID", run: app.delete},
		"version":  {usage: "version", run: app.version},
	}

	return app
}

// Run parses the global flags and dispatches to the named subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := a.flagSet("books")
	token := fs.String("token", "", "bearer token for authenticated commands")
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *token != "" {
		a.adapter.SetToken(*token)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return ErrNoCommand
	}

	cmd, ok := a.commands[rest[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, rest[0])
	}

	a.logger.Debug().Str("command", rest[0]).Msg("running command")
	return cmd.run(ctx, rest[1:])
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: books [-token TOKEN] <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", a.commands[name].usage)
	}
	fmt.Fprint(a.err, b.String())
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.err)
	return fs
}

// printJSON writes v to stdout as indented JSON.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
