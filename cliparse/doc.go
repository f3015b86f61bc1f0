// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:hwops.db)
  - DirectoryFile: group directory TOML file (required)
  - RacksFile: rack definitions synced at startup (optional)
  - OperatorGroup: group with edit rights over every device (required)
  - UserHeader: trusted header carrying the authenticated user (optional)
  - SecurePort: port where the front end asks for tickets (default: 444)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-directory    Group directory file
	-racks        Rack definitions file
	-operators    Operator group
	-user-header  Trusted user header
	-secure-port  Ticket port
	-env          Environment file (default: .env)

# Environment Variables

Flags fall back to environment variables, which may come from the env file
(loaded with github.com/joho/godotenv; variables already set are kept):

  - PORT, SECURE_PORT
  - DATABASE_URL, DATABASE_TYPE
  - DIRECTORY_FILE, RACKS_FILE
  - OPERATOR_GROUP, USER_HEADER
*/
package cliparse
