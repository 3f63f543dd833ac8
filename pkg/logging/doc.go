// Package logging provides structured logging for the verigate library with
// unified log handling and level filtering.
//
// The package is built on Go's standard slog package. Every entry carries a
// subsystem identifier (Auth, Dispatch, Config, Gateway) so applications can
// filter library output by concern.
//
// # Usage
//
//	import "verigate/pkg/logging"
//
//	// Initialize with debug level logging to stderr
//	logging.Init(logging.LevelDebug, os.Stderr)
//
//	// Log messages
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Auth", "Token expired, refetching")
//	logging.Error("Dispatch", err, "Request to %s failed", endpoint)
//
// Applications that already own an slog setup can route the library's output
// through it instead:
//
//	logging.SetLogger(slog.Default())
//
// # Library Defaults
//
// Until Init or SetLogger is called, the library logs warnings and errors to
// stderr and stays silent otherwise. The library never calls Init itself;
// level and destination belong to the embedding application.
//
// # Thread Safety
//
// The package-level logger is stored atomically. Init and SetLogger may be
// called while other goroutines are logging.
package logging
