package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	cause := errors.New("i2c nack")
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{PinInUse, PinInUse},
		{Wrap(SinkInitFailed, "pca9685.configure", cause), SinkInitFailed},
		{cause, Error},
	}
	for _, c := range cases {
		if got := Of(c.err); got != c.want {
			t.Fatalf("Of(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestWrapUnwrapAndMessage(t *testing.T) {
	cause := errors.New("no ack")
	err := Wrap(SinkInitFailed, "pca9685.configure", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error does not unwrap to its cause")
	}
	if got, want := err.Error(), "pca9685.configure: sink_init_failed: no ack"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if Of(err) != SinkInitFailed {
		t.Fatalf("Of lost the wrapped code")
	}
}
