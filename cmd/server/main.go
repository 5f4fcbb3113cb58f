package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fleetsim/internal/persistence/record"
	"fleetsim/internal/protocol"
	"fleetsim/internal/sim/tuning"
	"fleetsim/internal/sim/world"
	"fleetsim/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		seed       = flag.Int64("seed", 1337, "run seed")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		recordRuns = flag.Bool("record", false, "record runs under <data>/runs")
		loop       = flag.Bool("loop", false, "start a new run (next seed) when one finishes")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	srv := ws.NewServer(worldParams(tune, *seed), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			logger.Fatalf("http: %v", err)
		}
	}()

	runSeed := *seed
	for {
		if err := runOnce(tune, runSeed, *dataDir, *recordRuns, srv, logger); err != nil {
			logger.Fatalf("run: %v", err)
		}
		if !*loop {
			return
		}
		runSeed++
		srv.SetParams(worldParams(tune, runSeed))
	}
}

func runOnce(tune tuning.Tuning, seed int64, dataDir string, recordRun bool, srv *ws.Server, logger *log.Logger) error {
	w, err := world.New(tune.WorldConfig(seed))
	if err != nil {
		return err
	}

	var rec *record.Writer
	if recordRun {
		path := filepath.Join(dataDir, "runs", fmt.Sprintf("run-%d.jsonl.zst", seed))
		rec, err = record.NewWriter(path, record.Header{
			Version:     1,
			Seed:        seed,
			WorldParams: worldParams(tune, seed),
			StartedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
		defer rec.Close()
		logger.Printf("recording to %s", path)
	}

	hz := tune.TickRateHz
	if hz <= 0 {
		hz = 10
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	cfg := w.Config()
	logger.Printf("run start: seed=%d grid=%d agents=%d targets=%d byzantine=%d",
		seed, cfg.GridSize, cfg.Agents, cfg.Targets, len(cfg.Byzantine))

	for !w.Done() {
		<-ticker.C
		w.Step()
		f := w.Frame()
		srv.Broadcast(f)
		if rec != nil {
			if err := rec.WriteFrame(f); err != nil {
				return err
			}
		}
	}

	res := w.Result()
	srv.Broadcast(res)
	if rec != nil {
		if err := rec.WriteResult(res); err != nil {
			return err
		}
	}
	logger.Printf("run done: ticks=%d delivered=%d/%d ratio=%s",
		res.Ticks, res.Delivered, res.InitialTargets, ratioString(res.CompetitiveRatio, res.RatioUnbounded))
	return nil
}

func ratioString(ratio float64, unbounded bool) string {
	if unbounded {
		return "inf"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64)
}

func worldParams(t tuning.Tuning, seed int64) protocol.WorldParams {
	return protocol.WorldParams{
		GridSize:   t.GridSize,
		Agents:     t.Agents,
		Targets:    t.Targets,
		TickBudget: t.TickBudget,
		TickRateHz: t.TickRateHz,
		Seed:       seed,
	}
}
