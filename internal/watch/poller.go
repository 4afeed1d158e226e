// Package watch polls a dataset directory for new truck/pallet file pairs
// and feeds them to the benchmark runner as they appear. Operators drop
// generated instances into the directory and the engine picks them up
// without a restart.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/loadbay/pallet-engine/internal/bench"
)

// A pallet file P_<suffix>.csv pairs with the truck file TP_<suffix>.csv
// in the same directory.
const (
	palletPrefix = "P_"
	truckPrefix  = "TP_"
)

type Poller struct {
	dir      string
	runner   *bench.Runner
	interval time.Duration
	seen     map[string]bool
}

func NewPoller(dir string, runner *bench.Runner) *Poller {
	return &Poller{
		dir:      dir,
		runner:   runner,
		interval: 5 * time.Second,
		seen:     make(map[string]bool),
	}
}

func (p *Poller) Run(ctx context.Context) {
	log.Printf("[Watch] Polling %s for new dataset pairs...", p.dir)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Pairs present at startup count as seen; the watcher only reacts to
	// files arriving while it runs.
	for _, pair := range Discover(p.dir) {
		p.seen[pair.PalletPath] = true
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[Watch] Stopping dataset watcher...")
			return
		case <-ticker.C:
			var fresh []bench.DatasetPair
			for _, pair := range Discover(p.dir) {
				if p.seen[pair.PalletPath] {
					continue
				}
				p.seen[pair.PalletPath] = true
				fresh = append(fresh, pair)
			}
			if len(fresh) == 0 {
				continue
			}

			log.Printf("[Watch] Found %d new dataset pair(s)", len(fresh))
			p.runner.RunSuite(ctx, fresh)
		}
	}
}

// Discover lists complete pairs in a dataset directory. A pallet file
// without its truck counterpart is ignored until both are present.
func Discover(dir string) []bench.DatasetPair {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[Watch] Cannot read %s: %v", dir, err)
		return nil
	}

	var pairs []bench.DatasetPair
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, palletPrefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		suffix := strings.TrimPrefix(name, palletPrefix)
		truck := filepath.Join(dir, truckPrefix+suffix)
		if _, err := os.Stat(truck); err != nil {
			continue
		}
		pairs = append(pairs, bench.DatasetPair{
			TruckPath:  truck,
			PalletPath: filepath.Join(dir, name),
		})
	}
	return pairs
}
