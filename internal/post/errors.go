package post

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a malformed request or query value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a lookup of a post id that is not stored.
	ErrNotFound        = errors.New("not found")
	// ErrMissingField marks an update without an author.
	ErrMissingField    = errors.New("missing field")
)

// Messages returned to API clients.
const (
	MsgInvalidSortField     = "Invalid sort field. Must be 'title', 'content', 'author', or 'date'."
	MsgInvalidSortDirection = "Invalid sort direction. Must be 'asc' or 'desc'."
	MsgTitleContentRequired = "Invalid request, title and content are required."
	MsgAuthorRequired       = "Invalid request, author is required."
	MsgPostNotFound         = "Post does not exist."
)

// Error carries a client-facing message and unwraps to one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// InvalidArgument returns an ErrInvalidArgument error with a formatted message.
func InvalidArgument(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound error carrying MsgPostNotFound.
func NotFound() error {
	return &Error{Kind: ErrNotFound, Message: MsgPostNotFound}
}

// MissingField returns an ErrMissingField error with msg.
func MissingField(msg string) error {
	return &Error{Kind: ErrMissingField, Message: msg}
}
