package episode

import "errors"

var (
	// ErrInvalidPodcastID is returned when the podcast identifier is not a
	// positive integer.
	ErrInvalidPodcastID = errors.New("invalid podcast id")
	// ErrPodcastNotFound is returned when no stored podcast matches the
	// requested identifier.
	ErrPodcastNotFound = errors.New("podcast not found")
)
