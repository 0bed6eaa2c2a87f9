package waste

import (
	"context"
	"errors"
	"image"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// MaxRawLabels is how many labels a classifier returns per frame.
const MaxRawLabels = 10

// Classifier turns a decoded frame into ranked generic labels. Any pretrained
// classifier satisfying this contract can feed the resolver.
type Classifier interface {
	Initialize(ctx context.Context) error
	Classify(ctx context.Context, frame image.Image) ([]RawLabelPrediction, error)
}

// Model is the backend a ModelClassifier drives.
type Model interface {
	Load(ctx context.Context) error
	Predict(ctx context.Context, frame image.Image, k int) ([]RawLabelPrediction, error)
	Close() error
}

// ModelClassifier adapts a Model to the Classifier contract: the model is loaded
// at most once, concurrent Initialize calls share the in-flight load, and a
// failed load can be retried.
type ModelClassifier struct {
	model     Model
	maxLabels int
	logger    *log.Logger

	loads singleflight.Group
	ready atomic.Bool
}

// NewModelClassifier wraps model. maxLabels <= 0 uses MaxRawLabels.
func NewModelClassifier(model Model, maxLabels int, logger *log.Logger) *ModelClassifier {
	if maxLabels <= 0 || maxLabels > MaxRawLabels {
		maxLabels = MaxRawLabels
	}
	return &ModelClassifier{model: model, maxLabels: maxLabels, logger: logger}
}

// Initialize loads the model. Calls after the first success are no-ops.
func (c *ModelClassifier) Initialize(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}
	_, err, shared := c.loads.Do("load", func() (any, error) {
		if c.ready.Load() {
			return nil, nil
		}
		start := time.Now()
		if err := c.model.Load(ctx); err != nil {
			c.logf("model load failed: %v", err)
			return nil, &ModelLoadError{Err: err}
		}
		c.ready.Store(true)
		c.logf("model loaded in %s", time.Since(start).Round(time.Millisecond))
		return nil, nil
	})
	if shared {
		c.logf("joined in-flight model load")
	}
	return err
}

// Ready reports whether Initialize has succeeded.
func (c *ModelClassifier) Ready() bool {
	return c.ready.Load()
}

// Classify returns up to maxLabels predictions for frame, most probable first.
func (c *ModelClassifier) Classify(ctx context.Context, frame image.Image) ([]RawLabelPrediction, error) {
	if !c.ready.Load() {
		return nil, ErrNotInitialized
	}
	if frame == nil {
		return nil, &FrameError{Err: errors.New("frame is nil")}
	}
	preds, err := c.model.Predict(ctx, frame, c.maxLabels)
	if err != nil {
		return nil, &FrameError{Err: err}
	}
	return rankRaw(preds, c.maxLabels), nil
}

// Close releases the model. The classifier must be initialized again before use.
func (c *ModelClassifier) Close() error {
	c.ready.Store(false)
	if c.model == nil {
		return nil
	}
	return c.model.Close()
}

func (c *ModelClassifier) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func rankRaw(in []RawLabelPrediction, k int) []RawLabelPrediction {
	out := make([]RawLabelPrediction, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
