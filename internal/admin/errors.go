package admin

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingEmail   = errors.New("usage: promote <email>")
)
