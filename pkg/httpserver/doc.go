// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener, fires start hooks, and blocks until the context is
// canceled, SIGINT/SIGTERM arrives or Shutdown is called. Shutdown waits up to
// the configured timeout for in-flight requests (including open SSE streams)
// and then fires stop hooks.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness ("ALIVE") or readiness ("READY" /
// "NOT_READY") depending on whether checks are supplied.
//
// Errors from Run wrap ErrStart; errors from Shutdown wrap ErrShutdown.
package httpserver
