// drive-monitor prints the drive status lines a board writes to its log
// UART. The board's USB CDC port carries println diagnostics only.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tarm/serial"
)

var (
	port = flag.String("port", "/dev/ttyUSB0", "USB-UART adapter wired to the board's log UART (pico: GP0/GP1, bluepill: PA9/PA10)")
	baud = flag.Int("baud", 115200, "Log UART baud rate")
	raw  = flag.Bool("raw", false, "Echo lines that are not status lines")
)

func main() {
	flag.Parse()

	p, err := serial.OpenPort(&serial.Config{
		Name:        *port,
		Baud:        *baud,
		ReadTimeout: 0, // block until data arrives
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open serial port %s: %v\n", *port, err)
		os.Exit(1)
	}
	defer p.Close()

	fmt.Printf("Watching %s @ %d baud\n", *port, *baud)
	m := &monitor{out: os.Stdout, raw: *raw, now: time.Now}
	if err := m.run(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *port, err)
		os.Exit(1)
	}
}
