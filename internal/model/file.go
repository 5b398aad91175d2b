package model

import (
	"time"
)

// File is a blob in the shared pool, addressed only by its sanitized name.
// There is deliberately no owner: every signed-in user can see and remove it.
type File struct {
	Name    string
	Size    int64
	ModTime time.Time
}
