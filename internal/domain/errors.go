package domain

import "errors"

// ErrUpstream is returned when a remote endpoint could not be reached or
// answered with a non-2xx status.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream error")

// ErrDecode is returned when a payload (CSV feed or JSON batch) could not be
// parsed at all. Individual malformed fields never produce this error.
var ErrDecode = errors.New("decode error")
