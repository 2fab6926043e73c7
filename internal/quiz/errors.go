package quiz

import "errors"

// ErrInvalidRequest marks a malformed generation request (empty topic,
// non-positive count, unknown difficulty). Callers can match it with
// errors.Is.
var ErrInvalidRequest = errors.New("invalid request")
