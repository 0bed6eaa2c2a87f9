package vision

import (
	"errors"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// The onnxruntime environment is process-wide.
var envMu sync.Mutex

// Encoder runs an ONNX image classification model through onnxruntime.
type Encoder struct {
	mu      sync.RWMutex
	cfg     Config
	labels  []string
	session *ort.DynamicAdvancedSession
}

// Init loads the runtime library, the class labels and the model session.
func (e *Encoder) Init(cfg Config) error {
	cfg.ApplyDefaults()
	if cfg.ModelPath == "" {
		return errors.New("model path is required")
	}
	if err := initEnvironment(cfg.OrtDLL); err != nil {
		return err
	}
	var labels []string
	if cfg.LabelsPath != "" {
		var err error
		if labels, err = LoadLabels(cfg.LabelsPath); err != nil {
			return err
		}
	}
	if cfg.InputName == "" || cfg.OutputName == "" {
		inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
		if err != nil {
			return fmt.Errorf("inspect model: %w", err)
		}
		if len(inputs) == 0 || len(outputs) == 0 {
			return fmt.Errorf("model %s has no inputs or outputs", cfg.ModelPath)
		}
		if cfg.InputName == "" {
			cfg.InputName = inputs[0].Name
		}
		if cfg.OutputName == "" {
			cfg.OutputName = outputs[0].Name
		}
	}
	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		_ = e.session.Destroy()
	}
	e.cfg = cfg
	e.labels = labels
	e.session = session
	return nil
}

// Classify returns the k most probable labels for img. Tensors are allocated per
// call and destroyed before returning.
func (e *Encoder) Classify(img image.Image, k int) ([]Label, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.session == nil {
		return nil, errors.New("encoder is not initialized")
	}
	input, err := ort.NewTensor(ort.NewShape(inputShape(e.cfg)...), Preprocess(img, e.cfg))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}
	defer func() {
		if outputs[0] != nil {
			_ = outputs[0].Destroy()
		}
	}()
	output, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}
	return TopK(Probabilities(output.GetData()), e.labels, k), nil
}

// Labels returns the class names loaded by Init.
func (e *Encoder) Labels() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.labels...)
}

// Close destroys the session. The runtime environment stays loaded.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		_ = e.session.Destroy()
		e.session = nil
	}
}

func initEnvironment(dll string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if dll != "" {
		ort.SetSharedLibraryPath(dll)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

// Shutdown releases the process-wide onnxruntime environment.
func Shutdown() error {
	envMu.Lock()
	defer envMu.Unlock()
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
