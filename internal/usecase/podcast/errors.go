package podcast

import "errors"

var (
	// ErrInvalidID is returned when the podcast identifier is not a
	// positive integer.
	ErrInvalidID = errors.New("invalid podcast id")
	// ErrNotFound is returned when no stored podcast matches the id.
	ErrNotFound = errors.New("podcast not found")
	// ErrEmptyTerm is returned when a search is requested without a term.
	ErrEmptyTerm = errors.New("search term is required")
)
