// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/cliparse"
	"github.com/celskeggs/hwops/db"
	"github.com/celskeggs/hwops/handlers"
	"github.com/celskeggs/hwops/middleware"
	"github.com/celskeggs/hwops/render"
)

func NewRouter(conn *sql.DB, dir *auth.Directory, renderer *render.Renderer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	env := &handlers.Env{
		Store:    db.NewStore(conn),
		Oracle:   dir,
		Authz:    auth.NewAuthorizer(dir, cfg.OperatorGroup),
		Renderer: renderer,
		Config:   cfg,
		Realm:    dir.Realm,
	}

	// Initialize handlers
	rackHandler := handlers.NewRackHandler(env)
	deviceHandler := handlers.NewDeviceHandler(env)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Rack views (public)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(rackHandler.ListRacks))
	mux.HandleFunc("GET /racks/{name}", middleware.WithLogging(rackHandler.ViewRack))

	// Device views and edits
	mux.HandleFunc("GET /devices/{id}", middleware.WithLogging(deviceHandler.ViewDevice))
	mux.HandleFunc("GET /add", middleware.WithLogging(deviceHandler.AddForm))
	mux.HandleFunc("POST /devices", middleware.WithLogging(deviceHandler.SubmitAdd))
	mux.HandleFunc("POST /devices/{id}", middleware.WithLogging(deviceHandler.SubmitUpdate))

	return mux
}
