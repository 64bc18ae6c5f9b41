package audio

import (
	"errors"
)

// Sentinel errors
var (
	ErrAlreadyRunning = errors.New("audio graph already running")
	ErrNotRunning     = errors.New("audio graph not running")
	ErrNoProfile      = errors.New("no profile loaded")
)
