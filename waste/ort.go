package waste

import (
	"context"
	"errors"
	"image"
	"sync"

	"yashubustudio/wastesorter/vision"
)

// OrtModel is a Model backed by an ONNX classifier running in onnxruntime.
type OrtModel struct {
	cfg vision.Config

	mu  sync.RWMutex
	enc *vision.Encoder
}

// NewOrtModel prepares a model; nothing is loaded until Load.
func NewOrtModel(cfg vision.Config) *OrtModel {
	cfg.ApplyDefaults()
	return &OrtModel{cfg: cfg}
}

// Load initializes the runtime and creates the inference session.
func (o *OrtModel) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := &vision.Encoder{}
	if err := enc.Init(o.cfg); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.enc != nil {
		o.enc.Close()
	}
	o.enc = enc
	return nil
}

// Predict classifies frame and returns the k most probable labels.
func (o *OrtModel) Predict(_ context.Context, frame image.Image, k int) ([]RawLabelPrediction, error) {
	o.mu.RLock()
	enc := o.enc
	o.mu.RUnlock()
	if enc == nil {
		return nil, errors.New("onnx model is not loaded")
	}
	labels, err := enc.Classify(frame, k)
	if err != nil {
		return nil, err
	}
	out := make([]RawLabelPrediction, len(labels))
	for i, l := range labels {
		out[i] = RawLabelPrediction{Label: l.Name, Probability: l.Probability}
	}
	return out, nil
}

// Close releases the session.
func (o *OrtModel) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.enc != nil {
		o.enc.Close()
		o.enc = nil
	}
	return nil
}
