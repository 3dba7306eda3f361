package domain

import "errors"

var (
	// ErrNotFound indicates the remote backend does not know the requested entity.
	ErrNotFound = errors.New("not found")

	// ErrNoCart indicates no cart id could be resolved from the request or cookie.
	ErrNoCart = errors.New("no cart resolvable")

	// ErrNoLines indicates a cart mutation was requested without any usable lines.
	ErrNoLines = errors.New("no resolvable lines")

	// ErrRemoteUnavailable indicates the commerce backend could not be reached
	// after bounded retries, or the circuit to it is open.
	ErrRemoteUnavailable = errors.New("commerce backend unavailable")

	// ErrAlreadySubscribed indicates the backend rejected a newsletter signup
	// because the address is already registered.
	ErrAlreadySubscribed = errors.New("already subscribed")
)
