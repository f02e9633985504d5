// Package fmtx carries the firmware's status-line output.
package fmtx

import (
	"io"
	"os"
)

// DefaultOutput receives status lines. Platform bring-up points it at the
// board's log UART.
var DefaultOutput io.Writer = os.Stdout

// Println writes the concatenated parts and a newline to DefaultOutput in a
// single Write, so lines from different goroutines do not interleave.
func Println(parts ...string) (int, error) {
	n := 1
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	buf = append(buf, '\n')
	return DefaultOutput.Write(buf)
}
