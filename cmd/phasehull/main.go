// Command phasehull computes convex-hull phase stability for 2–4 element
// systems from YAML entry sets.
//
// Usage:
//
//	phasehull compute FILE...          stability table (or --format yaml)
//	phasehull watch FILE               recompute whenever FILE changes
//	phasehull project -s Li-Fe-O x...  composition ↔ plot coordinates
//	phasehull generate -s Li-Fe-O -n N synthetic entry set as YAML
//
// Defaults come from the environment (and a .env file when present):
// PHASEHULL_TOLERANCE, PHASEHULL_REFERENCE_POLICY, PHASEHULL_THRESHOLD,
// PHASEHULL_LOG_LEVEL, PHASEHULL_CACHE_SIZE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "phasehull:", err)
		stop()
		os.Exit(1)
	}
}
