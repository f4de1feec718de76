// Command formkit serves and fills the bundled forms.
//
// Usage:
//
//	formkit [-visitor id] <command> [args]
//
// Commands:
//
//	serve            run the HTTP adapter
//	fill <form>      fill a form in the terminal and save the record
//	summary <form>   print the saved records of a form
//	clear <form>     delete the saved records of a form
//	theme [toggle]   print or toggle the dark-mode preference
//	forms            list the available forms
//
// Configuration is read from the environment (and a .env file when present).
// STORE_DRIVER selects memory, redis, postgres, mongo or s3.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/tui"

	_ "github.com/dmitrymomot/formkit/pkg/bucket"
	_ "github.com/dmitrymomot/formkit/pkg/mongo"
	_ "github.com/dmitrymomot/formkit/pkg/pg"
	_ "github.com/dmitrymomot/formkit/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, "formkit:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	opts := append(cfg.Log.Options(),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(formhttp.RequestIDExtractor(), formhttp.VisitorExtractor()),
	)
	log := logger.New(opts...)

	schemas, err := forms.Registry()
	if err != nil {
		return err
	}

	store, err := kvstore.Open(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := kvstore.Close(store); err != nil {
			log.Error("failed to close store", logger.Error(err))
		}
	}()

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		schemas: schemas,
		out:     os.Stdout,
		errOut:  os.Stderr,
		driver:  tui.NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr),
	}
	return a.dispatch(ctx, args)
}
