package app

import (
	"strings"
	"sync"
	"time"
)

const logDebounceInterval = 150 * time.Millisecond

// logCapture is an io.Writer that keeps the last limit log lines and publishes
// them to sink, coalescing bursts of writes.
type logCapture struct {
	mu    sync.Mutex
	lines []string
	limit int
	sink  func(string)

	updateCh chan struct{}
	done     chan struct{}
}

func newLogCapture(limit int, sink func(string)) *logCapture {
	return &logCapture{limit: limit, sink: sink}
}

func (l *logCapture) Write(p []byte) (int, error) {
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	l.mu.Lock()
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if l.limit > 0 && len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	ch := l.updateCh
	l.mu.Unlock()

	if ch == nil {
		l.flush()
		return len(p), nil
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return len(p), nil
}

// Text returns the retained lines.
func (l *logCapture) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func (l *logCapture) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.updateCh != nil {
		return
	}
	l.updateCh = make(chan struct{}, 1)
	l.done = make(chan struct{})
	go l.updateLoop(l.updateCh, l.done)
}

func (l *logCapture) stop() {
	l.mu.Lock()
	done := l.done
	l.updateCh = nil
	l.done = nil
	l.mu.Unlock()
	if done != nil {
		close(done)
	}
	l.flush()
}

func (l *logCapture) updateLoop(updates <-chan struct{}, done <-chan struct{}) {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-done:
			timer.Stop()
			return
		case <-updates:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			l.flush()
		}
	}
}

func (l *logCapture) flush() {
	if l.sink != nil {
		l.sink(l.Text())
	}
}
