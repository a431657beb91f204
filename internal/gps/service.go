package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gnssfix/internal/nmea"
)

// Config controls the receiver session.
//
// A u-blox receiver on USB typically appears as /dev/ttyACM* and emits
// NMEA (often GNxxx talker IDs) at 9600 baud. Device may be empty to
// auto-detect. Source "file" replays a recorded NMEA log instead, which
// is handy on the bench.
type Config struct {
	Enable bool

	// Source selects ingestion: "serial" (default) or "file".
	Source string

	// Device is the serial device path for Source=="serial".
	Device string
	Baud   int

	// Path is the NMEA log for Source=="file".
	Path string
	// Loop restarts the log from the top when it runs out.
	Loop bool
	// LineDelay paces file playback; zero replays as fast as possible.
	LineDelay time.Duration

	// MaxSpeedMS is the position-jump threshold in m/s; consecutive fixes
	// implying a higher speed raise the position_jump flag. Zero uses the
	// default.
	MaxSpeedMS float64
}

// Status is the published view of the session: the merged fix plus
// session bookkeeping.
type Status struct {
	Enabled bool   `json:"enabled"`
	Source  string `json:"source,omitempty"`
	Device  string `json:"device,omitempty"`
	Baud    int    `json:"baud,omitempty"`
	Path    string `json:"path,omitempty"`

	Fix nmea.Snapshot `json:"fix"`

	SentencesTotal uint64 `json:"sentences_total"`
	RejectedTotal  uint64 `json:"rejected_total"`
	PositionJump   bool   `json:"position_jump,omitempty"`
	LastUpdateUTC  string `json:"last_update_utc,omitempty"`
	LastError      string `json:"last_error,omitempty"`
}

type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Status

	// mu serializes tracker access: decoders read-then-write several
	// related fields non-atomically.
	mu        sync.Mutex
	tracker   *nmea.Tracker
	jumps     *jumpDetector
	sentences uint64
	rejected  uint64
	jumped    bool

	closeMu sync.Mutex
	closer  io.Closer
}

func New(cfg Config) *Service {
	src := strings.ToLower(strings.TrimSpace(cfg.Source))
	if src == "" {
		src = "serial"
	}
	cfg.Source = src

	s := &Service{
		cfg:     cfg,
		tracker: nmea.NewTracker(),
		jumps:   newJumpDetector(cfg.MaxSpeedMS),
	}
	s.last.Store(Status{
		Enabled: cfg.Enable,
		Source:  src,
		Device:  cfg.Device,
		Baud:    cfg.Baud,
		Path:    cfg.Path,
		Fix:     s.tracker.Current(),
	})
	return s
}

func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if !s.cfg.Enable {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.cancel != nil {
		return nil
	}

	switch s.cfg.Source {
	case "file":
		return s.startFileLocked(ctx)
	case "serial":
		return s.startSerialLocked(ctx)
	default:
		return fmt.Errorf("unknown gps source %q", s.cfg.Source)
	}
}

func (s *Service) startSerialLocked(ctx context.Context) error {
	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setError("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	f, err := openSerial(device, baud)
	if err != nil {
		s.setError(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return err
	}
	s.closer = f

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = f.Close() }()

		log.Printf("gps enabled source=serial device=%s baud=%d", device, baud)
		s.readLines(childCtx, f)
	}()
	return nil
}

func (s *Service) startFileLocked(ctx context.Context) error {
	path := strings.TrimSpace(s.cfg.Path)
	if path == "" {
		return fmt.Errorf("gps source=file requires a path")
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		log.Printf("gps enabled source=file path=%s loop=%v", path, s.cfg.Loop)
		for {
			f, err := os.Open(path)
			if err != nil {
				s.setError(fmt.Sprintf("gps log open failed: %v", err))
				return
			}
			s.replay(childCtx, f)
			_ = f.Close()

			if !s.cfg.Loop || childCtx.Err() != nil {
				return
			}
		}
	}()
	return nil
}

// readLines consumes NMEA lines until the reader fails or ctx is done.
func (s *Service) readLines(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	// NMEA sentences are typically < 82 chars, but allow headroom for
	// receiver chatter.
	scanner.Buffer(make([]byte, 0, 256), 4096)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			s.setError(fmt.Sprintf("gps read stopped: %v", err))
			return
		}
		s.handleLine(time.Now().UTC(), scanner.Text())
	}
}

// replay is readLines with per-line pacing for recorded logs.
func (s *Service) replay(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 4096)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.handleLine(time.Now().UTC(), scanner.Text())

		if s.cfg.LineDelay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.LineDelay):
			}
		}
	}
}

func (s *Service) handleLine(nowUTC time.Time, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	// Some receivers interleave non-NMEA chatter; filter quickly.
	if !strings.HasPrefix(line, "$") {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.tracker.Decode(line)
	if !ok {
		s.rejected++
		s.publishLocked(s.tracker.Current(), "")
		return
	}
	s.sentences++

	if snap.Latitude != nil && snap.Longitude != nil {
		if s.jumps.observe(nowUTC, *snap.Latitude, *snap.Longitude) {
			s.jumped = true
		} else {
			s.jumped = false
		}
	}
	s.publishLocked(snap, nowUTC.Format(time.RFC3339))
}

func (s *Service) publishLocked(snap nmea.Snapshot, updatedUTC string) {
	cur, _ := s.last.Load().(Status)
	cur.Enabled = s.cfg.Enable
	cur.Fix = snap
	cur.SentencesTotal = s.sentences
	cur.RejectedTotal = s.rejected
	cur.PositionJump = s.jumped
	if updatedUTC != "" {
		cur.LastUpdateUTC = updatedUTC
	}
	s.last.Store(cur)
}

// Status returns the latest published session view.
func (s *Service) Status() Status {
	if s == nil {
		return Status{}
	}
	v, _ := s.last.Load().(Status)
	return v
}

// Reset replaces the fix with a fresh, all-absent one and clears session
// counters.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
	s.jumps.reset()
	s.sentences = 0
	s.rejected = 0
	s.jumped = false
	s.publishLocked(s.tracker.Current(), "")
}

// DistanceFrom returns the distance in meters from the current position
// to p. ok is false while no coordinates are established.
func (s *Service) DistanceFrom(p nmea.Point) (meters float64, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.DistanceTo(p)
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.closeMu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.closeMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := s.last.Load().(Status)
	cur.LastError = msg
	// Transient read/parse trouble must not flip fix validity.
	s.last.Store(cur)
}

func autoDetectDevice() string {
	// Keep it intentionally tiny and predictable.
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
