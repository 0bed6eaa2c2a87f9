package waste

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"yashubustudio/wastesorter/vision"
)

// FrameSource supplies the next frame of a live capture.
type FrameSource interface {
	Frame(ctx context.Context) (image.Image, error)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(ctx context.Context) (image.Image, error)

func (f FrameSourceFunc) Frame(ctx context.Context) (image.Image, error) { return f(ctx) }

// FileFrameSource re-reads an image file on every call, e.g. a snapshot an
// external camera tool keeps overwriting.
type FileFrameSource struct {
	Path string
}

func (f FileFrameSource) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vision.DecodeFile(f.Path)
}

// Scanner analyzes frames from a source at a fixed cadence. A failed frame is
// logged and skipped; the last good result stays current.
type Scanner struct {
	service  *Service
	source   FrameSource
	interval time.Duration
	logger   *log.Logger

	paused atomic.Bool

	mu        sync.RWMutex
	latest    Result
	hasLatest bool
}

// NewScanner creates a scanner. interval <= 0 uses the service's configured cadence.
func NewScanner(service *Service, source FrameSource, interval time.Duration, logger *log.Logger) *Scanner {
	if interval <= 0 {
		interval = service.Config().ScanInterval()
	}
	return &Scanner{service: service, source: source, interval: interval, logger: logger}
}

// Pause makes Run skip ticks until Resume.
func (s *Scanner) Pause() { s.paused.Store(true) }

// Resume continues a paused scanner.
func (s *Scanner) Resume() { s.paused.Store(false) }

// Paused reports whether the scanner is paused.
func (s *Scanner) Paused() bool { return s.paused.Load() }

// Latest returns the most recent successful result.
func (s *Scanner) Latest() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.hasLatest
}

// Run scans until ctx is done or the classifier turns out to be uninitialized.
// onResult may be nil.
func (s *Scanner) Run(ctx context.Context, onResult func(Result)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if s.paused.Load() {
			continue
		}
		res, err := s.Step(ctx)
		if err != nil {
			if errors.Is(err, ErrNotInitialized) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logf("skip frame: %v", err)
			continue
		}
		if onResult != nil {
			onResult(res)
		}
	}
}

// Step captures and analyzes a single frame.
func (s *Scanner) Step(ctx context.Context) (Result, error) {
	frame, err := s.source.Frame(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("capture frame: %w", err)
	}
	res, err := s.service.Analyze(ctx, frame)
	if err != nil {
		return Result{}, err
	}
	s.mu.Lock()
	s.latest = res
	s.hasLatest = true
	s.mu.Unlock()
	return res, nil
}

func (s *Scanner) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
