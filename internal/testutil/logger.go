package testutil

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Logger returns a debug-level logger that discards output and a hook that
// captures every entry.
func Logger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	return logger, hook
}

// Messages returns the messages of all captured entries at or above level.
func Messages(hook *test.Hook, level logrus.Level) []string {
	var out []string
	for _, entry := range hook.AllEntries() {
		if entry.Level <= level {
			out = append(out, entry.Message)
		}
	}

	return out
}
