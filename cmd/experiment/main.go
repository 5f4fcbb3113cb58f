package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"fleetsim/internal/persistence/runsdb"
	"fleetsim/internal/sim/tuning"
	"fleetsim/internal/sim/world"
)

func main() {
	var (
		runs       = flag.Int("runs", 20, "number of seeded runs")
		seedBase   = flag.Int64("seed", 1, "first seed; run i uses seed+i")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dbPath     = flag.String("db", "./data/runs.db", "sqlite results database")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[experiment] ", log.LstdFlags)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	store, err := runsdb.Open(*dbPath)
	if err != nil {
		logger.Fatalf("open results db: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < *runs; i++ {
		seed := *seedBase + int64(i)
		w, err := world.New(tune.WorldConfig(seed))
		if err != nil {
			logger.Fatalf("world (seed %d): %v", seed, err)
		}
		res := w.Run(nil)

		row := runsdb.RunRow{
			Seed:           seed,
			GridSize:       tune.GridSize,
			Agents:         tune.Agents,
			Byzantine:      len(tune.ByzantineAgents),
			InitialTargets: res.InitialTargets,
			Delivered:      res.Delivered,
			Ticks:          res.Ticks,
		}
		if !res.RatioUnbounded {
			row.CompetitiveRatio = sql.NullFloat64{Float64: res.CompetitiveRatio, Valid: true}
		}
		if err := store.InsertRun(ctx, row); err != nil {
			logger.Fatalf("insert run (seed %d): %v", seed, err)
		}
		logger.Printf("seed=%d ticks=%d delivered=%d/%d", seed, res.Ticks, res.Delivered, res.InitialTargets)
	}

	sum, err := store.Summarize(ctx)
	if err != nil {
		logger.Fatalf("summarize: %v", err)
	}
	logger.Printf("summary: runs=%d delivered=%d/%d ratio mean=%.2f min=%.2f max=%.2f (over %d rated runs)",
		sum.Runs, sum.Delivered, sum.Targets, sum.MeanRatio, sum.MinRatio, sum.MaxRatio, sum.RatedRuns)
}
