// Package logger builds *slog.Logger values for formkit components and keeps
// attribute names consistent across them.
//
// New takes functional options for format, level, output and static
// attributes. WithContextExtractors wraps the handler so request-scoped values
// (the request id and visitor id set by the HTTP adapter) are added to every
// record logged with a context:
//
//	log := logger.New(
//		logger.WithEnvironment(logger.Production, "formkit"),
//		logger.WithContextExtractors(formhttp.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "record saved",
//		logger.Form("registration"),
//		logger.StorageKey("techSummitUser"),
//	)
//
// Config is loaded from APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT and turned
// into options with Config.Options.
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally. Components that are built without a logger use
// Discard.
package logger
