package models

import "errors"

// ErrDuplicate is returned by stores when a write hits a unique index.
var ErrDuplicate = errors.New("duplicate key")
