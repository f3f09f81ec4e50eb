package config

import "errors"

// ErrInvalidConfig is returned when a threshold falls outside its
// documented range (§7).
var ErrInvalidConfig = errors.New("config: invalid threshold")
