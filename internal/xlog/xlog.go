// Package xlog carries the ambient logging and error-sentinel style the
// rest of the module leans on: a toggleable debug print gated by a
// package-level flag, and the sentinel errors used for timeout-shaped
// failures.
package xlog

import (
	"errors"
	"log"
	"time"
)

// Verbose gates Debugf (Warnf always prints). Off by default; the CLI
// flips it on -debug.
var Verbose = false

// Sentinel errors for timeout-shaped failures. No package in this
// module currently returns them.
var (
	ErrLockTimeout = errors.New("pgmtr: acquire timed out")
	ErrTimeout     = errors.New("pgmtr: operation timed out")
)

// Debugf prints a timestamped line when Verbose is set. It never
// allocates a closure under the hood beyond log.Printf's own
// formatting, cheap enough to leave in unconditionally.
func Debugf(format string, args ...interface{}) {
	if Verbose {
		log.Printf(time.Now().Format("15:04:05.000")+" "+format, args...)
	}
}

// Warnf always prints, regardless of Verbose; used for conditions the
// operator should see.
func Warnf(format string, args ...interface{}) {
	log.Printf("[WARN] "+format, args...)
}
