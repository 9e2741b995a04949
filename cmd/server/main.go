package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"officegrid/internal/persistence/indexdb"
	"officegrid/internal/persistence/snapshot"
	"officegrid/internal/sim/catalogs"
	"officegrid/internal/sim/office"
	"officegrid/internal/transport/ws"
)

func main() {
	var (
		addr      = flag.String("addr", ":3000", "http listen address")
		configDir = flag.String("configs", "./configs", "config directory")
		dataDir   = flag.String("data", "./data", "runtime data directory")
		roomsPath = flag.String("rooms", "", "path to rooms document (default: <data>/rooms.json)")
		seed      = flag.Int64("seed", 0, "rng seed for spawn placement (0 = time-based)")
		disableDB = flag.Bool("disable_db", false, "disable the sqlite read-model index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	_ = os.MkdirAll(*dataDir, 0o755)
	livePath := *roomsPath
	if livePath == "" {
		livePath = filepath.Join(*dataDir, "rooms.json")
	}
	fallback := filepath.Join(*configDir, "default_rooms.json")
	roomDocs, loadedFrom, err := snapshot.LoadWithFallback(livePath, fallback)
	if err != nil {
		logger.Fatalf("load rooms: %v", err)
	}
	logger.Printf("loaded %d rooms from %s", len(roomDocs), loadedFrom)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	o, err := office.New(office.Config{Seed: rngSeed}, cats, roomDocs, logger)
	if err != nil {
		logger.Fatalf("office: %v", err)
	}

	// Layout edits are persisted off-thread; the writer owns the file.
	sink := make(chan snapshot.Document, 8)
	go snapshot.RunWriter(sink, livePath, filepath.Join(*dataDir, "archive"), logger)
	o.SetSnapshotSink(sink)

	if !*disableDB {
		idx, err := indexdb.Open(*dataDir)
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
		o.SetAuditLogger(idx)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := o.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("office loop: %v", err)
		}
	}()

	wsServer := ws.NewServer(o, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", wsServer.Handler())
	mux.HandleFunc("/api/get-userid", handleGetUserID)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http: %v", err)
	}
}

// handleGetUserID hands the external media SDK a fresh numeric identity.
func handleGetUserID(w http.ResponseWriter, r *http.Request) {
	uid := 10000 + rand.Intn(90000)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"uid":     uid,
		"message": "User ID generated successfully",
	})
}
