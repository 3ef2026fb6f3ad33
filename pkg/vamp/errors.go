package vamp

import "errors"

var (
	ErrArgument          = errors.New("invalid argument")
	ErrInvalidIdentity   = errors.New("invalid identity")
	ErrUnsupportedHost   = errors.New("unsupported host")
	ErrNotManaged        = errors.New("not managed by the Vote Account Manager program")
	ErrTransport         = errors.New("rpc transport error")
	ErrInconsistentState = errors.New("inconsistent manager state")
)
