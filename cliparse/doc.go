// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3418)
  - DatabaseURL: PostgreSQL connection string (required)
  - SessionSalt: Secret for password hashing (required)

# CLI Flags

	-p             Server port
	-d             Database URL
	--session-salt Password/session salt

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	SESSION_SALT → --session-salt

CLI flags take precedence over environment variables. main loads a
local .env file (via godotenv) before parsing, so development setups
can keep secrets there.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SALT must be provided
*/
package cliparse
