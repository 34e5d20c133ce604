package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethpandaops/qmerge/internal/testutil"
	"github.com/ethpandaops/qmerge/pkg/qmood"
	"github.com/ethpandaops/qmerge/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	result *Result
	err    error
}

func TestPipeline_Watch(t *testing.T) {
	fx := newFixture(t)

	cfg := defaultConfig(t)
	cfg.Output = filepath.Join(fx.dir, "merged.csv")

	p, _ := newPipeline(t, cfg)

	runs := make(chan run, 16)
	p.OnRun = func(result *Result, err error) {
		runs <- run{result: result, err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, fx.base, fx.override)
	}()

	select {
	case r := <-runs:
		require.NoError(t, r.err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	merged, err := table.Load(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "1.0", testutil.Cell(t, merged, 0, qmood.Reusability))

	require.NoError(t, os.WriteFile(fx.override, []byte("file,DCC\nfoo.java,1\n"), 0o600))

	// A single save can surface as several events; wait for a run that saw
	// the complete file.
	deadline := time.After(5 * time.Second)
	for updated := false; !updated; {
		select {
		case r := <-runs:
			if r.err != nil {
				continue
			}
			merged, err = table.Load(cfg.Output)
			require.NoError(t, err)
			updated = testutil.Cell(t, merged, 0, qmood.Reusability) == "2.0"
		case <-deadline:
			t.Fatal("change to override input did not trigger a run")
		}
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestPipeline_Watch_MissingInput(t *testing.T) {
	fx := newFixture(t)

	cfg := defaultConfig(t)
	cfg.Output = filepath.Join(fx.dir, "merged.csv")
	p, _ := newPipeline(t, cfg)

	err := p.Watch(context.Background(), filepath.Join(fx.dir, "missing.csv"), fx.override)
	assert.Error(t, err)
}
