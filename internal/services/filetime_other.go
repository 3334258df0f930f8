//go:build !darwin

package services

import (
	"os"
	"time"
)

// fileCreated falls back to the modification time where the platform's stat
// does not report a birth time.
func fileCreated(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
