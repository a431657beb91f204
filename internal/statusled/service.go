// Package statusled drives a fix indicator LED on a GPIO pin.
//
// The LED is solid while the receiver reports a valid fix and blinks
// while it is still acquiring.
package statusled

import (
	"sync"
	"time"
)

type Config struct {
	Enable bool

	// Pin is BCM GPIO numbering.
	Pin int
	// BlinkInterval is the half period while acquiring.
	BlinkInterval time.Duration
}

type Service struct {
	cfg Config

	// fixValid reports whether the receiver currently has a valid fix.
	fixValid func() bool

	drvMu sync.Mutex
	drv   ledDriver
	lit   bool

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(cfg Config, fixValid func() bool) *Service {
	if cfg.BlinkInterval <= 0 {
		cfg.BlinkInterval = 500 * time.Millisecond
	}
	return &Service{cfg: cfg, fixValid: fixValid, stopCh: make(chan struct{})}
}

func (s *Service) Start() error {
	if !s.cfg.Enable {
		return nil
	}

	drv, err := openLEDFn(s.cfg.Pin)
	if err != nil {
		return err
	}
	s.drvMu.Lock()
	s.drv = drv
	s.drvMu.Unlock()

	s.wg.Add(1)
	go s.run()
	return nil
}

func (s *Service) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.BlinkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.step()
		}
	}
}

func (s *Service) step() {
	s.drvMu.Lock()
	defer s.drvMu.Unlock()
	if s.drv == nil {
		return
	}
	if s.fixValid() {
		s.lit = true
	} else {
		s.lit = !s.lit
	}
	_ = s.drv.SetOn(s.lit)
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()

	s.drvMu.Lock()
	drv := s.drv
	s.drv = nil
	s.drvMu.Unlock()
	if drv != nil {
		_ = drv.Close()
	}
}
