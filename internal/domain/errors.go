package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrBountyNotFound        = errors.New("bounty not found")
	ErrUnknownProvider       = errors.New("unknown responder provider")
	ErrResponderUnavailable  = errors.New("responder unavailable")
	ErrEmptyGeneratedReply   = errors.New("generated reply is empty")
	ErrUnsupportedEngineMode = errors.New("unsupported engine mode")
	ErrEmptyAssetID          = errors.New("asset id is required")
	ErrEmptyMessage          = errors.New("message text is required")
	ErrCredentialNotFound    = errors.New("credential not found")
)
