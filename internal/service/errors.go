package service

import "errors"

var (
	// ErrSelfFollow is returned when a user tries to follow themself.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrNotFollowing is returned when unfollowing an author the user
	// never followed.
	ErrNotFollowing = errors.New("not following this author")
)

// ValidationErrors maps a form field to its failure message. A nil or
// empty map means the input is valid. Handlers render these with HTTP
// 200 alongside the re-displayed form; nothing is persisted.
type ValidationErrors map[string]string

func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}
