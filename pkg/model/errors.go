package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidStatus = goerr.New("invalid content status")

	// Dispatch failures: reported synchronously, never retried automatically
	ErrWebhookNotConfigured = goerr.New("content webhook URL is not configured")
	ErrWebhookUnreachable   = goerr.New("content service is unreachable")
	ErrWebhookRejected      = goerr.New("content service rejected the request")

	// Terminal listener failures
	ErrGenerationFailed  = goerr.New("content generation failed")
	ErrGenerationTimeout = goerr.New("content generation timed out")

	// Transport failures observed by the listener. Permission problems get
	// an actionable message, everything else falls through to a generic one.
	ErrPermissionDenied = goerr.New("permission denied: re-authenticate or check access rules")

	// Cancellation is not a failure: the store keeps no error for it, the
	// caller just gets told the wait ended early.
	ErrRequestCancelled = goerr.New("content request cancelled")

	ErrContentNotFound = goerr.New("content not found")
)
