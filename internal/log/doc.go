// Package log provides logging helpers built on top of the standard slog
// package.
//
// This package extends slog to provide:
//   - Coarsening of location attributes so logs do not carry precise positions
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Location coarsening
//
// The LocationHandler rounds the values of location attributes (latitude,
// longitude, lat, lon, in any letter case) to two decimal places, roughly
// one kilometre. Float values and numeric strings are rounded; anything
// else passes through. Exported files are never affected, only log output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("record extracted",
//	    "file", "IMG_0001.jpg",
//	    "latitude", 45.523064,  // logged as 45.52
//	)
//
//	slog.SetDefault(logger)
package log
