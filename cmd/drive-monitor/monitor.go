package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"drivecode-go/services/drive/report"
	"drivecode-go/types"
)

type monitor struct {
	out io.Writer
	raw bool
	now func() time.Time

	last  types.DriveState
	seen  bool
	lines int // status lines accepted
}

// run consumes r line by line until EOF.
func (m *monitor) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m.line(sc.Text())
	}
	return sc.Err()
}

func (m *monitor) line(s string) {
	s = strings.TrimRight(s, "\r")
	if !report.IsStatus(s) {
		if m.raw && strings.TrimSpace(s) != "" {
			fmt.Fprintf(m.out, "  | %s\n", s)
		}
		return
	}
	st, err := report.Parse(s)
	if err != nil {
		fmt.Fprintf(m.out, "bad status line %q: %v\n", s, err)
		return
	}
	fmt.Fprintf(m.out, "%s %s\n", m.now().Format("15:04:05.000"), m.describe(st))
	m.last, m.seen = st, true
	m.lines++
}

func (m *monitor) describe(st types.DriveState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%-8s strength=%d", st.Mode, st.Strength)
	if st.HasPower {
		fmt.Fprintf(&b, " power=%s", st.Power)
	}
	if m.seen && st.Drops > m.last.Drops {
		fmt.Fprintf(&b, " dropped=%d", st.Drops-m.last.Drops)
	}
	return b.String()
}
