package service

import "errors"

// Sentinel errors for the caller-facing taxonomy. Controllers branch on these
// with errors.Is and translate them to HTTP statuses; everything else is an
// unexpected storage fault and surfaces as a generic message.
var (
	// ErrNotFound covers both genuinely missing entities and cross-tenant
	// access: a row owned by another organization must be indistinguishable
	// from one that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidLink means the submitted token matches no test link.
	ErrInvalidLink = errors.New("invalid or expired test link")

	// ErrLinkExpired is terminal for a token; resubmission cannot succeed.
	ErrLinkExpired = errors.New("this test link has expired")

	// ErrAttemptLimitReached is terminal for a token once the link's
	// max_attempts ceiling is hit.
	ErrAttemptLimitReached = errors.New("maximum attempts reached for this test")

	// ErrAttemptEmpty rejects AI scoring of an attempt without content.
	ErrAttemptEmpty = errors.New("attempt has no content to score")

	// ErrScoringFailure wraps any AI collaborator fault. Retryable by
	// re-invoking the whole operation; no partial state is committed.
	ErrScoringFailure = errors.New("failed to generate assessment")

	// ErrEmailNotConfigured is returned by the mail service when no API key
	// was provided. Callers treat it like any other notification failure.
	ErrEmailNotConfigured = errors.New("email service not configured")
)
