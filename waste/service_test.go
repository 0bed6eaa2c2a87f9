package waste

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	initErr  error
	raw      []RawLabelPrediction
	err      error
	inits    int
	classify int
}

func (s *stubClassifier) Initialize(context.Context) error {
	s.inits++
	return s.initErr
}

func (s *stubClassifier) Classify(context.Context, image.Image) ([]RawLabelPrediction, error) {
	s.classify++
	return s.raw, s.err
}

func TestNewServiceRequiresClassifier(t *testing.T) {
	_, err := NewService(nil, nil, Config{}, nil)
	assert.Error(t, err)
}

func TestNewServiceDefaults(t *testing.T) {
	svc, err := NewService(&stubClassifier{}, nil, Config{}, nil)
	require.NoError(t, err)
	assert.Same(t, DefaultResolver(), svc.Resolver())
	assert.Equal(t, MaxPredictions, svc.Config().TopK)
}

func TestServiceAnalyze(t *testing.T) {
	var buf bytes.Buffer
	cls := &stubClassifier{raw: []RawLabelPrediction{
		{Label: "water bottle", Probability: 0.5},
		{Label: "plastic bag", Probability: 0.3},
		{Label: "banana", Probability: 0.2},
	}}
	svc, err := NewService(cls, nil, Config{}, log.New(&buf, "", 0))
	require.NoError(t, err)
	require.NoError(t, svc.Initialize(context.Background()))

	res, err := svc.Analyze(context.Background(), testFrame())
	require.NoError(t, err)
	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)

	require.Len(t, res.Predictions, 2)
	top, ok := res.Top()
	require.True(t, ok)
	assert.Equal(t, Plastic, top.Category)
	assert.InDelta(t, 0.8, top.Confidence, tolerance)

	require.NotNil(t, res.Instruction)
	assert.Equal(t, Plastic, res.Instruction.Category)
	assert.NotEmpty(t, res.Instruction.Instructions)
	assert.Contains(t, buf.String(), "classifier ready")
	assert.Contains(t, buf.String(), "Plastic 80%")
}

func TestServiceAnalyzeHonorsTopK(t *testing.T) {
	cls := &stubClassifier{raw: []RawLabelPrediction{
		{Label: "water bottle", Probability: 0.4},
		{Label: "banana", Probability: 0.3},
		{Label: "hammer", Probability: 0.2},
		{Label: "laptop", Probability: 0.1},
	}}
	svc, err := NewService(cls, nil, Config{TopK: 1}, nil)
	require.NoError(t, err)
	res, err := svc.Analyze(context.Background(), testFrame())
	require.NoError(t, err)
	require.Len(t, res.Predictions, 1)
	assert.Equal(t, Plastic, res.Predictions[0].Category)
}

func TestServiceAnalyzeNoLabels(t *testing.T) {
	svc, err := NewService(&stubClassifier{}, nil, Config{}, nil)
	require.NoError(t, err)
	res, err := svc.Analyze(context.Background(), testFrame())
	require.NoError(t, err)
	assert.Empty(t, res.Predictions)
	assert.Nil(t, res.Instruction)
	_, ok := res.Top()
	assert.False(t, ok)
}

func TestServiceAnalyzePropagatesErrors(t *testing.T) {
	svc, err := NewService(&stubClassifier{err: ErrNotInitialized}, nil, Config{}, nil)
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), testFrame())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestServiceInitializeError(t *testing.T) {
	loadErr := &ModelLoadError{Err: errors.New("no such file")}
	svc, err := NewService(&stubClassifier{initErr: loadErr}, nil, Config{}, nil)
	require.NoError(t, err)
	err = svc.Initialize(context.Background())
	assert.True(t, IsModelLoadError(err))
}

func TestServiceUsesCustomResolver(t *testing.T) {
	r := NewResolver(Tables{Mappings: []Mapping{{Key: "widget", Category: EWaste}}, Keywords: []KeywordRule{}})
	cls := &stubClassifier{raw: []RawLabelPrediction{
		{Label: "blue widget", Probability: 0.6},
		{Label: "water bottle", Probability: 0.4},
	}}
	svc, err := NewService(cls, r, Config{}, nil)
	require.NoError(t, err)
	res, err := svc.Analyze(context.Background(), testFrame())
	require.NoError(t, err)
	require.Len(t, res.Predictions, 2)
	assert.Equal(t, EWaste, res.Predictions[0].Category)
	assert.Equal(t, NonRecyclable, res.Predictions[1].Category)
}
