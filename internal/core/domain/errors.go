package domain

import "errors"

// ErrNotFound is returned by repositories when an entity does not exist.
var ErrNotFound = errors.New("domain: not found")

// ErrDuplicateISRC is returned when a playlist would gain two tracks with
// the same ISRC.
var ErrDuplicateISRC = errors.New("domain: duplicate ISRC")
