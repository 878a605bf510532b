// Package logging routes the standard logger for wavetrack binaries.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	DefaultDir = "logs"
	FileName   = "wavetrack.log"
)

// Setup discards log output unless debug is set, in which case it appends to dir/FileName
// Terminal viewers must not write logs to the screen they draw on
// The returned file is nil when logging is disabled or the file cannot be opened
func Setup(debug bool, dir string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Println("=== wavetrack debug log started ===")
	return f
}
