package waste

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/google/uuid"
)

// Service turns frames into ranked waste categories with disposal guidance.
type Service struct {
	classifier Classifier
	resolver   *Resolver
	cfg        Config
	logger     *log.Logger
}

// NewService constructs a service. A nil resolver uses the built-in tables.
func NewService(classifier Classifier, resolver *Resolver, cfg Config, logger *log.Logger) (*Service, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if resolver == nil {
		resolver = defaultResolver
	}
	cfg.ApplyDefaults()
	return &Service{
		classifier: classifier,
		resolver:   resolver,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config {
	return s.cfg
}

// Resolver returns the resolver used for aggregation.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Initialize loads the classifier model.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.classifier.Initialize(ctx); err != nil {
		return err
	}
	s.logf("classifier ready")
	return nil
}

// Analyze classifies frame, aggregates the labels into categories and attaches the
// disposal instruction for the best category.
func (s *Service) Analyze(ctx context.Context, frame image.Image) (Result, error) {
	start := time.Now()
	res := Result{ID: uuid.NewString()}
	raw, err := s.classifier.Classify(ctx, frame)
	if err != nil {
		return res, err
	}
	res.Predictions = s.resolver.Aggregate(raw, s.cfg.TopK)
	if top, ok := res.Top(); ok {
		d := Disposal(top.Category)
		res.Instruction = &d
	}
	res.Elapsed = time.Since(start)
	if top, ok := res.Top(); ok {
		s.logf("frame %s: %s %.0f%% (%s) in %s", res.ID, top.Category, top.Confidence*100,
			top.OriginalLabel, res.Elapsed.Round(time.Millisecond))
	} else {
		s.logf("frame %s: no labels", res.ID)
	}
	return res, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
