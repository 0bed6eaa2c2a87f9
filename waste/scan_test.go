package waste

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, cls Classifier, source FrameSource) *Scanner {
	t.Helper()
	svc, err := NewService(cls, nil, Config{}, nil)
	require.NoError(t, err)
	return NewScanner(svc, source, 5*time.Millisecond, nil)
}

func staticSource() FrameSource {
	return FrameSourceFunc(func(context.Context) (image.Image, error) { return testFrame(), nil })
}

func TestScannerStep(t *testing.T) {
	cls := &stubClassifier{raw: []RawLabelPrediction{{Label: "banana", Probability: 0.9}}}
	s := newTestScanner(t, cls, staticSource())

	_, ok := s.Latest()
	assert.False(t, ok)

	res, err := s.Step(context.Background())
	require.NoError(t, err)
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, res.ID, latest.ID)
	assert.Equal(t, Organic, latest.Predictions[0].Category)
}

func TestScannerStepSourceError(t *testing.T) {
	boom := errors.New("camera unplugged")
	s := newTestScanner(t, &stubClassifier{}, FrameSourceFunc(func(context.Context) (image.Image, error) {
		return nil, boom
	}))
	_, err := s.Step(context.Background())
	assert.ErrorIs(t, err, boom)
	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestScannerRunSkipsBadFramesUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	source := FrameSourceFunc(func(context.Context) (image.Image, error) {
		if calls.Add(1)%2 == 0 {
			return nil, errors.New("blurry")
		}
		return testFrame(), nil
	})
	cls := &stubClassifier{raw: []RawLabelPrediction{{Label: "hammer", Probability: 0.7}}}
	s := newTestScanner(t, cls, source)

	ctx, cancel := context.WithCancel(context.Background())
	var results atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(Result) {
			if results.Add(1) >= 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("scanner did not stop")
	}
	assert.GreaterOrEqual(t, results.Load(), int32(3))
	assert.GreaterOrEqual(t, calls.Load(), int32(4))
}

func TestScannerRunStopsWhenNotInitialized(t *testing.T) {
	s := newTestScanner(t, &stubClassifier{err: ErrNotInitialized}, staticSource())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.Run(ctx, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestScannerPause(t *testing.T) {
	cls := &stubClassifier{raw: []RawLabelPrediction{{Label: "banana", Probability: 0.9}}}
	s := newTestScanner(t, cls, staticSource())
	s.Pause()
	assert.True(t, s.Paused())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.Run(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, cls.classify)

	s.Resume()
	assert.False(t, s.Paused())
}

func TestNewScannerUsesConfiguredInterval(t *testing.T) {
	svc, err := NewService(&stubClassifier{}, nil, Config{ScanIntervalMs: 250}, nil)
	require.NoError(t, err)
	s := NewScanner(svc, staticSource(), 0, nil)
	assert.Equal(t, 250*time.Millisecond, s.interval)
}

func TestFileFrameSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 6))))
	require.NoError(t, f.Close())

	img, err := FileFrameSource{Path: path}.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	_, err = FileFrameSource{Path: filepath.Join(t.TempDir(), "missing.png")}.Frame(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileFrameSource{Path: path}.Frame(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
