package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"fleetsim/internal/persistence/record"
	"fleetsim/internal/transport/ws"
)

func main() {
	var (
		recPath = flag.String("record", "", "path to run recording (.jsonl.zst)")
		addr    = flag.String("addr", "", "if set, re-broadcast the run to observers on this address")
		every   = flag.Int("every", 10, "print a summary line every N ticks (0 to disable)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[replay] ", log.LstdFlags)

	if *recPath == "" {
		fmt.Fprintln(os.Stderr, "missing -record")
		os.Exit(2)
	}
	run, err := record.ReadRun(*recPath)
	if err != nil {
		logger.Fatalf("read recording: %v", err)
	}

	h := run.Header
	fmt.Printf("recording v%d seed=%d grid=%d agents=%d targets=%d frames=%d\n",
		h.Version, h.Seed, h.WorldParams.GridSize, h.WorldParams.Agents, h.WorldParams.Targets, len(run.Frames))

	var srv *ws.Server
	var ticker *time.Ticker
	if *addr != "" {
		srv = ws.NewServer(h.WorldParams, logger)
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/ws", srv.Handler())
		go func() {
			logger.Printf("listening on %s", *addr)
			if err := http.ListenAndServe(*addr, mux); err != nil {
				logger.Fatalf("http: %v", err)
			}
		}()

		hz := h.WorldParams.TickRateHz
		if hz <= 0 {
			hz = 10
		}
		ticker = time.NewTicker(time.Second / time.Duration(hz))
		defer ticker.Stop()
	}

	for _, f := range run.Frames {
		if srv != nil {
			<-ticker.C
			srv.Broadcast(f)
		}
		if *every > 0 && f.Tick%uint64(*every) == 0 {
			fmt.Printf("tick=%3d targets=%d delivered=%d ratio=%s\n",
				f.Tick, len(f.Targets), f.Delivered, ratioString(f.CompetitiveRatio, f.RatioUnbounded))
		}
	}

	if run.Result != nil {
		r := *run.Result
		if srv != nil {
			srv.Broadcast(r)
		}
		fmt.Printf("result: ticks=%d delivered=%d/%d ratio=%s\n",
			r.Ticks, r.Delivered, r.InitialTargets, ratioString(r.CompetitiveRatio, r.RatioUnbounded))
	}
}

func ratioString(ratio float64, unbounded bool) string {
	if unbounded {
		return "inf"
	}
	return fmt.Sprintf("%.2f", ratio)
}
