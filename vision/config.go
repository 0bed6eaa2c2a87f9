package vision

// Layout is the tensor memory order the model expects.
type Layout string

const (
	LayoutNCHW Layout = "nchw"
	LayoutNHWC Layout = "nhwc"
)

const defaultInputSize = 224

var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Config describes an ONNX image classification model and its runtime.
type Config struct {
	OrtDLL     string     `json:"ortDll"`
	ModelPath  string     `json:"modelPath"`
	LabelsPath string     `json:"labelsPath"`
	InputSize  int        `json:"inputSize"`
	Layout     Layout     `json:"layout"`
	Mean       [3]float32 `json:"mean"`
	Std        [3]float32 `json:"std"`
	InputName  string     `json:"inputName,omitempty"`
	OutputName string     `json:"outputName,omitempty"`
}

// ApplyDefaults populates zero values for a MobileNet-style ImageNet model.
func (c *Config) ApplyDefaults() {
	if c.InputSize <= 0 {
		c.InputSize = defaultInputSize
	}
	if c.Layout == "" {
		c.Layout = LayoutNCHW
	}
	if c.Mean == ([3]float32{}) {
		c.Mean = imagenetMean
	}
	if c.Std == ([3]float32{}) {
		c.Std = imagenetStd
	}
}
