// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the hwops inventory server.

hwops tracks which devices occupy which slots of which racks. Anyone can
browse the racks; hardware operators add devices, and members of a
device's owner group may edit it.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DIRECTORY_FILE=directory.toml OPERATOR_GROUP=hwops@example.org USER_HEADER=X-Remote-User go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..." -directory directory.toml -operators hwops@example.org

# Configuration

Required settings:

  - DIRECTORY_FILE (-directory): TOML file of users, groups, and device notes
  - OPERATOR_GROUP (-operators): group whose members may add devices
  - DATABASE_URL (-d): required when DATABASE_TYPE is postgres
  - USER_HEADER (-user-header), or the three TLS files below: at least one
    way of identifying users

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RACKS_FILE (-racks): TOML list of racks synced at startup
  - SECURE_PORT (-secure-port): port that requests client certificates (default: 444)
  - TLS_CERT, TLS_KEY, CLIENT_CA (-tls-cert, -tls-key, -client-ca): serve
    the secure port here, requiring certificates signed by CLIENT_CA

Variables may also come from a .env file (-env).

# Architecture

  - handlers: HTTP request handlers (racks, devices)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, error status mapping
  - layout: Rack table layout
  - render: Embedded HTML templates
  - models: Domain and page types
  - auth: Principals, group directory, permissions
  - db: Schema, store, rack file loading
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
