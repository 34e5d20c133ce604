// Package testutil provides test utilities for qmerge, including:
//   - in-memory table builders (tables.go)
//   - CSV fixture files written under t.TempDir() (fixtures.go)
//   - a discarding logrus logger with a capture hook (logger.go)
package testutil
