package chain

import "errors"

var (
	// ErrChainUnavailable reports a transport failure, timeout or malformed node response.
	ErrChainUnavailable = errors.New("chain unavailable")
	// ErrNotFound reports a height beyond the node's tip.
	ErrNotFound = errors.New("block not found")
)
