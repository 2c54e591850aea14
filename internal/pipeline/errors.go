package pipeline

import "errors"

// ErrLoad is returned when any source dataset cannot be loaded. A run that
// fails with it produces no snapshot.
var ErrLoad = errors.New("pipeline load failed")
