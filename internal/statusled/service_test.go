package statusled

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeLED struct {
	mu     sync.Mutex
	states []bool
	closed bool
}

func (f *fakeLED) SetOn(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, on)
	return nil
}

func (f *fakeLED) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeLED) snapshot() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.states...)
}

func withFakeLED(t *testing.T, led *fakeLED, err error) {
	t.Helper()
	old := openLEDFn
	openLEDFn = func(pin int) (ledDriver, error) {
		if err != nil {
			return nil, err
		}
		return led, nil
	}
	t.Cleanup(func() { openLEDFn = old })
}

func waitForStates(t *testing.T, led *fakeLED, n int) []bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := led.snapshot()
		if len(got) >= n {
			return got
		}
		if time.Now().After(deadline) {
			t.Fatalf("only %d LED updates before deadline, want %d", len(got), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartDisabledNoDriver(t *testing.T) {
	withFakeLED(t, nil, errors.New("should not be opened"))

	s := New(Config{Enable: false, Pin: 17}, func() bool { return true })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Close()
}

func TestStartOpenError(t *testing.T) {
	withFakeLED(t, nil, errors.New("line busy"))

	s := New(Config{Enable: true, Pin: 17}, func() bool { return true })
	if err := s.Start(); err == nil {
		t.Fatal("expected open error")
	}
}

func TestSolidOnValidFix(t *testing.T) {
	led := &fakeLED{}
	withFakeLED(t, led, nil)

	s := New(Config{Enable: true, Pin: 17, BlinkInterval: 5 * time.Millisecond},
		func() bool { return true })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	states := waitForStates(t, led, 3)
	for i, on := range states {
		if !on {
			t.Fatalf("update %d: LED off during valid fix", i)
		}
	}
}

func TestBlinksWhileAcquiring(t *testing.T) {
	led := &fakeLED{}
	withFakeLED(t, led, nil)

	s := New(Config{Enable: true, Pin: 17, BlinkInterval: 5 * time.Millisecond},
		func() bool { return false })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	states := waitForStates(t, led, 4)
	for i := 1; i < len(states); i++ {
		if states[i] == states[i-1] {
			t.Fatalf("updates %d and %d both %v, expected toggling", i-1, i, states[i])
		}
	}
}

func TestCloseReleasesDriver(t *testing.T) {
	led := &fakeLED{}
	withFakeLED(t, led, nil)

	s := New(Config{Enable: true, Pin: 17, BlinkInterval: 5 * time.Millisecond},
		func() bool { return true })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Close()

	led.mu.Lock()
	closed := led.closed
	led.mu.Unlock()
	if !closed {
		t.Fatal("driver not closed")
	}
}
