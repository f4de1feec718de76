package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/summary"
	"github.com/dmitrymomot/formkit/pkg/theme"
	"github.com/dmitrymomot/formkit/pkg/tui"
)

func (a *app) serve(ctx context.Context) error {
	svc, err := formhttp.New(a.cfg.Forms, a.store, formhttp.NewCatalog(a.schemas), formhttp.WithLogger(a.log))
	if err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithStartHook(func(_ context.Context, addr string) {
			fmt.Fprintf(a.out, "formkit listening on http://%s (store namespace per visitor cookie)\n", addr)
		}),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The server also stops on its own signal handling; cancel so the
		// sweeper follows it.
		defer cancel()
		return srv.Run(ctx, svc.Handle())
	})
	g.Go(func() error {
		return svc.SweepEvery(ctx, a.cfg.Forms.SessionIdleTimeout/2)
	})
	return g.Wait()
}

func (a *app) listForms() error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTORAGE KEY\tMODE\tFIELDS")
	for _, name := range formhttp.NewCatalog(a.schemas).Names() {
		s := a.schemas[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Name(), s.StorageKey(), s.Mode(), len(s.Fields()))
	}
	return tw.Flush()
}

func (a *app) fill(ctx context.Context, schema *form.Schema) error {
	book, err := a.book(schema)
	if err != nil {
		return err
	}

	rec, err := tui.NewRunner(a.driver, tui.WithLogger(a.log)).Fill(ctx, schema)
	if err != nil {
		return err
	}
	if err := book.Save(ctx, rec); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "record saved", logger.Form(schema.Name()), logger.StorageKey(book.Key()))

	delay := a.cfg.Forms.RedirectDelay
	if delay > 0 {
		fmt.Fprintf(a.out, "Submitted successfully. Showing summary in %s...\n", delay)
	} else {
		fmt.Fprintln(a.out, "Submitted successfully.")
	}
	sleep := a.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	if err := sleep(ctx, delay); err != nil {
		return err
	}
	return a.printSummary(ctx, schema)
}

func (a *app) printSummary(ctx context.Context, schema *form.Schema) error {
	book, err := a.book(schema)
	if err != nil {
		return err
	}
	recs, err := book.List(ctx)
	if err != nil {
		return err
	}

	s := summary.FromRecords(schema.Name(), recs)
	if !s.IsEmpty() {
		fmt.Fprintln(a.out, s.Title)
	}
	return s.WriteText(a.out)
}

func (a *app) clear(ctx context.Context, schema *form.Schema) error {
	book, err := a.book(schema)
	if err != nil {
		return err
	}
	if err := book.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cleared %s records.\n", schema.Name())
	return nil
}

func (a *app) showTheme(ctx context.Context) error {
	mode, err := theme.Load(ctx, a.visitorStore())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", mode)
	return nil
}

func (a *app) toggleTheme(ctx context.Context) error {
	mode, err := theme.Toggle(ctx, a.visitorStore())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", mode)
	return nil
}
