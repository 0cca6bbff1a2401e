package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/fixture"
	"github.com/katalvlaran/phasehull/hullcache"
	"github.com/katalvlaran/phasehull/recompute"
)

const defaultPollInterval = time.Second

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags    requestFlags
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Recompute and print the diagram whenever FILE changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}
			cache, err := hullcache.New(a.cfg.CacheSize, hullcache.WithLogger(a.logger))
			if err != nil {
				return err
			}
			worker, err := recompute.New(cache, recompute.WithLogger(a.logger))
			if err != nil {
				return err
			}
			wt := &watcher{app: a, cmd: cmd, flags: &flags, path: args[0], worker: worker, pending: make(map[uint64][]chem.PhaseEntry)}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return worker.Run(ctx) })
			g.Go(func() error { return wt.print(ctx) })
			g.Go(func() error { return wt.poll(ctx, interval) })
			err = g.Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}

			return err
		},
	}
	flags.register(cmd, a.cfg)
	cmd.Flags().DurationVar(&interval, "interval", defaultPollInterval, "file polling interval")

	return cmd
}

type watcher struct {
	app    *app
	cmd    *cobra.Command
	flags  *requestFlags
	path   string
	worker *recompute.Worker

	mu      sync.Mutex
	pending map[uint64][]chem.PhaseEntry // generation → submitted entries
}

// poll submits the file on start and after every modification.
func (wt *watcher) poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var (
		lastMod  time.Time
		lastSize int64 = -1
	)
	for {
		if info, err := os.Stat(wt.path); err != nil {
			wt.app.logger.Warn("watch: stat failed", "file", wt.path, "err", err)
		} else if !info.ModTime().Equal(lastMod) || info.Size() != lastSize {
			lastMod, lastSize = info.ModTime(), info.Size()
			wt.submit()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (wt *watcher) submit() {
	set, err := fixture.Load(wt.path)
	if err != nil {
		// A half-written file is common while editing; wait for the next change.
		wt.app.logger.Warn("watch: load failed", "file", wt.path, "err", err)
		return
	}
	req, err := wt.flags.request(wt.cmd, wt.app.cfg, set)
	if err != nil {
		wt.app.logger.Warn("watch: bad flags", "err", err)
		return
	}

	wt.mu.Lock()
	gen := wt.worker.Submit(req)
	wt.pending[gen] = req.Entries
	wt.mu.Unlock()
	wt.app.logger.Debug("watch: submitted", "file", wt.path, "generation", gen, "entries", len(req.Entries))
}

func (wt *watcher) print(ctx context.Context) error {
	out := wt.cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-wt.worker.Updates():
			wt.mu.Lock()
			entries := wt.pending[u.Generation]
			for gen := range wt.pending {
				if gen <= u.Generation {
					delete(wt.pending, gen)
				}
			}
			wt.mu.Unlock()

			fmt.Fprintf(out, "generation %d\n", u.Generation)
			if u.Diagram == nil {
				fmt.Fprintln(out, "error:", u.Err)
				continue
			}
			if err := writeTable(out, newReport(wt.path, entries, u.Diagram, wt.flags.threshold)); err != nil {
				return err
			}
		}
	}
}
