// Package logging provides structured logging for the DS-Search core,
// built on log/slog.
//
// Components obtain child loggers tagged with a component name:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	crawlerLog := logger.Component("crawler")
//	crawlerLog.Info("fetch complete", "url", url, "status", status)
//
// Query text is logged verbatim but user identities are opaque strings; the
// core never logs credentials or raw page bodies.
package logging
