package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/records"
	"github.com/dmitrymomot/formkit/pkg/tui"
)

var errUsage = errors.New("usage")

type appConfig struct {
	Log   logger.Config
	Store kvstore.Config
	HTTP  httpserver.Config
	Forms formhttp.Config

	// Visitor is the namespace terminal commands read and write. The HTTP
	// adapter uses the visitor cookie id, so passing one here inspects that
	// browser's data.
	Visitor string `env:"CLI_VISITOR" envDefault:"local"`
}

type app struct {
	cfg     appConfig
	log     *slog.Logger
	store   kvstore.Store
	schemas map[string]*form.Schema
	out     io.Writer
	errOut  io.Writer
	driver  tui.PromptDriver

	// sleep waits between saving a filled form and printing its summary.
	sleep func(ctx context.Context, d time.Duration) error
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("formkit", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.StringVar(&a.cfg.Visitor, "visitor", a.cfg.Visitor, "visitor namespace for fill, summary, clear and theme")
	fs.Usage = func() { a.usage() }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return errUsage
	}

	cmd, rest := rest[0], rest[1:]
	switch cmd {
	case "serve":
		return a.serve(ctx)
	case "forms":
		return a.listForms()
	case "theme":
		if len(rest) > 0 && rest[0] == "toggle" {
			return a.toggleTheme(ctx)
		}
		return a.showTheme(ctx)
	case "fill", "summary", "clear":
		if len(rest) != 1 {
			fmt.Fprintf(a.errOut, "formkit %s: expected a form name\n", cmd)
			return errUsage
		}
		schema, err := a.schema(rest[0])
		if err != nil {
			return err
		}
		switch cmd {
		case "fill":
			return a.fill(ctx, schema)
		case "summary":
			return a.printSummary(ctx, schema)
		default:
			return a.clear(ctx, schema)
		}
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		fmt.Fprintf(a.errOut, "formkit: unknown command %q\n", cmd)
		a.usage()
		return errUsage
	}
}

func (a *app) usage() {
	fmt.Fprint(a.errOut, `Usage: formkit [-visitor id] <command> [args]

Commands:
  serve            run the HTTP adapter
  fill <form>      fill a form in the terminal and save the record
  summary <form>   print the saved records of a form
  clear <form>     delete the saved records of a form
  theme [toggle]   print or toggle the dark-mode preference
  forms            list the available forms
`)
}

func (a *app) schema(name string) (*form.Schema, error) {
	s, ok := a.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", forms.ErrUnknownForm, name)
	}
	return s, nil
}

// visitorStore matches the namespace the HTTP adapter uses per visitor.
func (a *app) visitorStore() kvstore.Store {
	return kvstore.Prefixed(a.store, "visitor:"+a.cfg.Visitor)
}

func (a *app) book(schema *form.Schema) (*records.Book, error) {
	return records.ForSchema(a.visitorStore(), schema)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
