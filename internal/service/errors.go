package service

import "errors"

// Business-rule errors surfaced to callers. Handlers map these onto HTTP
// statuses; infrastructure failures (DB, redis) are wrapped and propagated
// separately so the two are always distinguishable.
var (
	// ErrRegisterClosed: a sale/expense/payment write was attempted while a
	// closure exists for today. Not retried — the register must be reopened.
	ErrRegisterClosed = errors.New("cash register is closed for today")

	// ErrInvalidCredentials: wrong reopen password (or bad login). No state
	// change was made.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
