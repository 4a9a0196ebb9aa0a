package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEntryNotFound = errors.New("entry not found")
	ErrForbidden     = errors.New("authorization failed")

	ErrDispatchFailed = errors.New("job dispatch failed")
)

// Token rejection reasons, in reporting precedence order: a token that fails
// an earlier check is reported with that reason and never reaches the later
// checks. The revocation ledger is only consulted for tokens that are
// structurally valid, correctly signed, and unexpired.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature mismatch")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
)
