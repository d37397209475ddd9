// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and password hashing utilities.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded. The handlers package stores them in
the session table and reads them back from the X-Session-Token header.

# Passwords

Passwords are hashed with HMAC-SHA256 using a server-wide salt:

	hash := auth.HashPassword(password, salt)
	err := auth.CheckPassword(password, salt, storedHash)

CheckPassword compares in constant time and returns ErrBadCredentials
on mismatch.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
