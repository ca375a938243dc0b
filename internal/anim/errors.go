package anim

import "errors"

// ErrUnknownEasing is returned by EasingByName for unregistered names.
var ErrUnknownEasing = errors.New("anim: unknown easing")
