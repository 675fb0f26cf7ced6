package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Yiin/YARP/internal/persistence/ledger"
	"github.com/Yiin/YARP/internal/persistence/snapshot"
	"github.com/Yiin/YARP/internal/sim/catalogs"
	"github.com/Yiin/YARP/internal/sim/tuning"
	"github.com/Yiin/YARP/internal/sim/world"
	"github.com/Yiin/YARP/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		snapPath   = flag.String("snapshot", "", "path to snapshot to load (default: <data>/world.snap.zst if present)")
		saveEvery  = flag.Duration("save_every", 5*time.Minute, "snapshot interval")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite ledger index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	_ = os.MkdirAll(*dataDir, 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Default()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	// Ledger: append-only JSONL for audit, sqlite for per-character reads.
	jsonl := ledger.NewJSONLWriter(filepath.Join(*dataDir, "ledger"), "ledger")
	defer jsonl.Close()
	sinks := ledger.Multi{jsonl}
	var idx *ledger.SQLiteIndex
	if !*disableDB {
		idx, err = ledger.OpenSQLite(filepath.Join(*dataDir, "ledger", "index.db"))
		if err != nil {
			logger.Fatalf("open ledger index: %v", err)
		}
		defer idx.Close()
		sinks = append(sinks, idx)
	}

	w := world.NewWorld(cats, tune, sinks, world.NewHandlerRegistry(), logger)

	snapFile := strings.TrimSpace(*snapPath)
	if snapFile == "" {
		snapFile = filepath.Join(*dataDir, "world.snap.zst")
	}
	if _, statErr := os.Stat(snapFile); statErr == nil {
		snap, err := snapshot.Load(snapFile)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if err := w.Restore(snap); err != nil {
			logger.Fatalf("restore snapshot: %v", err)
		}
		logger.Printf("resumed %d characters from %s", w.Characters().Len(), filepath.Base(snapFile))
	}

	ctx, cancel := signalContext()
	defer cancel()

	go w.RunVitals(ctx)

	// Periodic snapshot writer.
	go func() {
		t := time.NewTicker(*saveEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := snapshot.Save(snapFile, w.Snapshot()); err != nil {
					logger.Printf("snapshot write: %v", err)
				}
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/admin/v1/balance", func(rw http.ResponseWriter, r *http.Request) {
		if idx == nil {
			http.Error(rw, "index disabled", http.StatusServiceUnavailable)
			return
		}
		id := r.URL.Query().Get("character")
		if id == "" {
			http.Error(rw, "missing character", http.StatusBadRequest)
			return
		}
		idx.Flush()
		txs, err := idx.History(id)
		if err != nil {
			http.Error(rw, err.Error(), http.StatusInternalServerError)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(txs)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}

	// Final snapshot on shutdown.
	if err := snapshot.Save(snapFile, w.Snapshot()); err != nil {
		logger.Printf("final snapshot: %v", err)
	} else {
		logger.Printf("saved %d characters to %s", w.Characters().Len(), filepath.Base(snapFile))
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
