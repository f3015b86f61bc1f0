package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/cliparse"
	"github.com/celskeggs/hwops/db"
	"github.com/celskeggs/hwops/render"
	"github.com/celskeggs/hwops/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Racks are configuration; bring the table in line with the file
	if cfg.RacksFile != "" {
		racks, err := db.LoadRacks(cfg.RacksFile)
		if err != nil {
			slog.Error("loading racks failed", "file", cfg.RacksFile, "error", err)
			os.Exit(1)
		}
		if err := db.NewStore(dbConn).SyncRacks(context.Background(), racks); err != nil {
			slog.Error("syncing racks failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Racks synced", "count", len(racks))
	}

	dir, err := auth.LoadDirectory(cfg.DirectoryFile)
	if err != nil {
		slog.Error("loading directory failed", "file", cfg.DirectoryFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Directory loaded", "realm", dir.Realm, "users", len(dir.Users), "groups", len(dir.Groups))

	renderer, err := render.New()
	if err != nil {
		slog.Error("loading templates failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(dbConn, dir, renderer, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// The secure port asks browsers for a client certificate
	var secure *http.Server
	if cfg.ServesClientCerts() {
		tlsConfig, err := auth.ClientTLSConfig(cfg.ClientCA)
		if err != nil {
			slog.Error("loading client CA failed", "file", cfg.ClientCA, "error", err)
			os.Exit(1)
		}
		secure = &http.Server{
			Handler:   mux,
			Addr:      ":" + strconv.Itoa(cfg.SecurePort),
			TLSConfig: tlsConfig,
		}
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
		if secure != nil {
			secure.Close()
		}
	}()

	if secure != nil {
		go func() {
			slog.Info("Listening for client certificates", "port", cfg.SecurePort)
			err := secure.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			if err != nil && err != http.ErrServerClosed {
				slog.Error("Secure server closed", "error", err)
				server.Close()
			}
		}()
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "secure_port", cfg.SecurePort)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
