// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/celskeggs/hwops/render"
	"github.com/celskeggs/hwops/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	return NewRouter(db, testutil.GetTestDirectory(t), renderer, testutil.GetTestConfig()), db
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected HTML content type, got %q", ct)
	}
}

func TestUnknownPath(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/polls", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// 400, 404 and 303 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/racks/A1"},
		{"GET", "/devices/test-id"},
		{"GET", "/add?rack=A1&slot=1"},
		{"POST", "/devices"},
		{"POST", "/devices/test-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/devices/test-id"},
		{"PUT", "/devices"},
		{"POST", "/racks/A1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, db := newTestRouter(t)
	testutil.CreateTestRack(t, db, "A1", 1, 4)
	id := testutil.CreateTestDevice(t, db, "A1", "web1", 1, 2, "web-team@example.org")

	t.Run("device ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/devices/"+id, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "web1")
	})

	t.Run("rack name extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/racks/A1", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "web1")
	})
}

// TestInventoryWorkflow walks an operator and an owner through the site:
// 1. Operator adds a device from an empty slot
// 2. The device appears in the rack table
// 3. A member of the owner group moves it
// 4. An unrelated user is refused
func TestInventoryWorkflow(t *testing.T) {
	mux, db := newTestRouter(t)
	testutil.CreateTestRack(t, db, "A1", 1, 4)
	testutil.CreateTestRack(t, db, "B1", 2, 2)

	// Step 1: operator opens the add form and submits it
	req := testutil.MakeRequest("GET", "/add?rack=A1&slot=2", nil, "alice")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	form := testutil.DeviceForm("A1", "web1", 2, 3, "web-team@example.org")
	req = testutil.MakeRequest("POST", "/devices", form, "alice")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Add device failed: %d - %s", w.Code, w.Body.String())
	}

	match := regexp.MustCompile(`/devices/([0-9a-f-]{36})`).FindStringSubmatch(w.Body.String())
	if match == nil {
		t.Fatalf("Step 1 - No device link in %s", w.Body.String())
	}
	id := match[1]

	// Step 2: the table shows the device and the remaining empty slots
	req = testutil.MakeRequest("GET", "/", nil, "")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, `href="/devices/`+id+`"`)
	testutil.AssertContains(t, w, `rowspan="2"`)

	// Step 3: bob is in web-team and may move the device to B1
	form = testutil.DeviceForm("B1", "web1", 1, 2, "web-team@example.org")
	req = testutil.MakeRequest("POST", "/devices/"+id, form, "bob")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Update failed: %d - %s", w.Code, w.Body.String())
	}

	req = testutil.MakeRequest("GET", "/racks/B1", nil, "")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertContains(t, w, "web1")

	req = testutil.MakeRequest("GET", "/devices/"+id, nil, "")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertContains(t, w, "by bob")

	// Step 4: carol has no claim on the device
	form = testutil.DeviceForm("A1", "web1", 1, 1, "web-team@example.org")
	req = testutil.MakeRequest("POST", "/devices/"+id, form, "carol")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	if n := testutil.CountDevices(t, db); n != 1 {
		t.Errorf("Expected 1 device, got %d", n)
	}
}

// TestLoginRedirectLandsOnPage follows the 303 an anonymous POST gets, the
// way a browser would after logging in on the secure port.
func TestLoginRedirectLandsOnPage(t *testing.T) {
	mux, db := newTestRouter(t)
	testutil.CreateTestRack(t, db, "A1", 1, 4)
	id := testutil.CreateTestDevice(t, db, "A1", "web1", 1, 1, "web-team@example.org")

	testCases := []struct {
		name string
		path string
		user string
		want string
	}{
		{"add", "/devices", "alice", `action="/devices"`},
		{"update", "/devices/" + id, "bob", `action="/devices/` + id + `"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := testutil.DeviceForm("A1", "web2", 2, 3, "web-team@example.org")
			req := testutil.MakeRequest("POST", tc.path, form, "")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, http.StatusSeeOther)

			loc, err := url.Parse(w.Header().Get("Location"))
			if err != nil {
				t.Fatalf("Bad Location %q: %v", w.Header().Get("Location"), err)
			}
			if loc.Scheme != "https" || loc.Port() != "444" {
				t.Errorf("Expected redirect to the secure port, got %s", loc)
			}

			req = testutil.MakeRequest("GET", loc.RequestURI(), nil, tc.user)
			w = httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			testutil.AssertContains(t, w, tc.want)
		})
	}

	if n := testutil.CountDevices(t, db); n != 1 {
		t.Errorf("Expected anonymous POSTs to write nothing, got %d devices", n)
	}
}
