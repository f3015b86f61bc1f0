// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/cliparse"
	"github.com/celskeggs/hwops/db"
	"github.com/celskeggs/hwops/middleware"
	"github.com/celskeggs/hwops/models"
	"github.com/celskeggs/hwops/render"
)

// Env is what every handler needs: storage, identity, and rendering.
type Env struct {
	Store    *db.Store
	Oracle   auth.GroupOracle
	Authz    *auth.Authorizer
	Renderer *render.Renderer
	Config   cliparse.Config
	Realm    string
}

// user returns the authenticated caller, or "" if none
func (e *Env) user(r *http.Request) string {
	return auth.Principal(r, e.Config.UserHeader, e.Realm)
}

func (e *Env) viewer(r *http.Request, user string, canUpdate bool) models.Viewer {
	return models.Viewer{
		User:      user,
		AuthLink:  auth.AuthLink(r, user, e.Config.SecurePort),
		CanUpdate: canUpdate,
	}
}

// requireUser redirects unauthenticated callers to back on the secure port.
// back must be a page that serves GET, since the browser follows the 303
// with one. It returns "" when it has already responded.
func (e *Env) requireUser(w http.ResponseWriter, r *http.Request, back string) string {
	user := e.user(r)
	if user == "" {
		http.Redirect(w, r, auth.LoginLink(r, back, e.Config.SecurePort), http.StatusSeeOther)
	}
	return user
}

func (e *Env) page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := e.Renderer.HTML(w, status, name, data); err != nil {
		slog.Error("failed to render page", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// fail logs err and shows the error page with the status it maps to
func (e *Env) fail(w http.ResponseWriter, r *http.Request, err error) {
	e.failStatus(w, r, middleware.ErrorStatus(err), err)
}

func (e *Env) failStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.Info("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	e.page(w, r, status, render.PageError, middleware.ErrorPage(status, err))
}
