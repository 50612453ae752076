//go:build darwin

package input

import (
	"errors"
	"testing"
	"time"
)

func TestStopRightAfterStartReturns(t *testing.T) {
	m := New(staticNamer("x"))
	if err := m.Start(); err != nil {
		if errors.Is(err, ErrTapCreate) {
			t.Skipf("input tap unavailable: %v", err)
		}
		t.Fatalf("Start() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- m.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Stop() did not return after an immediate stop")
	}
}
