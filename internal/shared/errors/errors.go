// Package errors holds the sentinel errors shared across modules.
package errors

import "errors"

var (
	ErrMissingBotToken   = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrMissingTarget     = errors.New("TARGET_CHANNEL_ID environment variable is required")
	ErrUnauthorized      = errors.New("unauthorized user")
	ErrInvalidCredential = errors.New("missing or invalid credential")
	ErrValidation        = errors.New("validation failed")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrUnknownAction     = errors.New("unknown action")
	ErrBlobNotFound      = errors.New("blob not found")
	ErrCollaborator      = errors.New("collaborator call failed")
)
