// Package term is the terminal-printer collaborator described in the
// spec's external interfaces: a minimal status-line formatter. The rich
// version (color detection, terminal width, spinners) is explicitly out
// of the core's scope; this is the interface the core programs against.
package term

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Printer renders start/done/err status lines for a long operation.
type Printer struct {
	command string
	start   time.Time
}

// StartMsg begins a dotted status line: "init tpcc: loading data ......".
func StartMsg(command, message string) *Printer {
	dots := strings.Repeat(".", 6)
	fmt.Printf("%s: %s %s ", command, message, dots)
	return &Printer{command: command, start: time.Now()}
}

// DoneMsg completes the line with an elapsed-time marker.
func (p *Printer) DoneMsg() {
	fmt.Printf("done (%.3f ms)\n", float64(time.Since(p.start).Microseconds())/1000.0)
}

// ErrMsg emits a failed marker to stdout and the error detail to stderr.
func (p *Printer) ErrMsg(err error) {
	fmt.Printf("failed\n")
	fmt.Fprintf(os.Stderr, "%s: error: %v\n", p.command, err)
}
