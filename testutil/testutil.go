// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/cliparse"
	"github.com/celskeggs/hwops/db"
)

// TestDBURL is an in-memory SQLite database, private to one connection
const TestDBURL = ":memory:"

// UserHeader is the trusted header test requests authenticate with
const UserHeader = "X-Remote-User"

// OperatorGroup is the hardware operator group in TestDirectory
const OperatorGroup = "hwops@example.org"

// TestDirectory has one operator (alice), an owner group with bob, and
// carol who belongs to nothing.
const TestDirectory = `
realm = "example.org"
users = ["alice", "bob", "carol"]

[groups]
"hwops@example.org" = ["alice"]
"web-team@example.org" = ["bob"]

[info]
"web1" = "serves the main site"
`

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8080,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		OperatorGroup: OperatorGroup,
		UserHeader:    UserHeader,
		SecurePort:    444,
	}
}

// GetTestDirectory parses TestDirectory
func GetTestDirectory(t *testing.T) *auth.Directory {
	t.Helper()

	dir, err := auth.ParseDirectory(TestDirectory)
	if err != nil {
		t.Fatalf("Failed to parse test directory: %v", err)
	}
	return dir
}

// CreateTestRack inserts a rack
func CreateTestRack(t *testing.T, conn *sql.DB, name string, order, height int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO rack (name, display_order, height) VALUES ($1, $2, $3)
	`, name, order, height)
	if err != nil {
		t.Fatalf("Failed to create test rack: %v", err)
	}
}

// CreateTestDevice inserts a device and returns its ID
func CreateTestDevice(t *testing.T, conn *sql.DB, rack, name string, first, last int, owner string) string {
	t.Helper()

	id := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO device (id, name, rack, rack_first_slot, rack_last_slot, owner, contact,
			service_level, model, last_updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'ops@example.org', 'best effort', 'R610', 'setup', $7)
	`, id, name, rack, first, last, owner, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test device: %v", err)
	}

	return id
}

// CountDevices returns the number of device rows
func CountDevices(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM device`).Scan(&n); err != nil {
		t.Fatalf("Failed to count devices: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request. A non-nil form is sent as the
// urlencoded body; a non-empty user is set in UserHeader.
func MakeRequest(method, path string, form url.Values, user string) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if user != "" {
		req.Header.Set(UserHeader, user)
	}

	return req
}

// DeviceForm returns a complete, valid add/update form
func DeviceForm(rack, name string, first, last int, owner string) url.Values {
	return url.Values{
		"rack":       {rack},
		"first":      {strconv.Itoa(first)},
		"last":       {strconv.Itoa(last)},
		"devicename": {name},
		"owner":      {owner},
		"contact":    {"ops@example.org"},
		"service":    {"best effort"},
		"model":      {"R640"},
		"ip":         {"192.0.2.10"},
		"comments":   {""},
	}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks that the response body contains s
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, s string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), s) {
		t.Errorf("Expected body to contain %q. Body: %s", s, w.Body.String())
	}
}
