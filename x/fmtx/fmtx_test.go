package fmtx

import (
	"bytes"
	"testing"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestPrintlnSingleWrite(t *testing.T) {
	var w countingWriter
	prev := DefaultOutput
	DefaultOutput = &w
	defer func() { DefaultOutput = prev }()

	n, err := Println("drive", " mode=normal", " strength=2")
	if err != nil {
		t.Fatal(err)
	}
	const want = "drive mode=normal strength=2\n"
	if w.String() != want || n != len(want) {
		t.Fatalf("wrote %q (%d bytes)", w.String(), n)
	}
	if w.writes != 1 {
		t.Fatalf("writes = %d, want 1", w.writes)
	}

	w.Reset()
	if _, err := Println(); err != nil || w.String() != "\n" {
		t.Fatalf("empty line: %q %v", w.String(), err)
	}
}
