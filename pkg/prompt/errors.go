package prompt

import "errors"

// ErrAborted is returned when the operator interrupts an interactive session.
var ErrAborted = errors.New("prompt: aborted by user")
