package waste

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the disposal classes an item can be sorted into.
type Category string

const (
	Plastic       Category = "Plastic"
	Paper         Category = "Paper"
	Glass         Category = "Glass"
	Metal         Category = "Metal"
	Organic       Category = "Organic / Compost"
	EWaste        Category = "E-waste"
	Hazardous     Category = "Hazardous"
	NonRecyclable Category = "Non-recyclable"
)

// Fallback is returned for labels no table recognizes.
const Fallback = NonRecyclable

var allCategories = []Category{Plastic, Paper, Glass, Metal, Organic, EWaste, Hazardous, NonRecyclable}

var categoryAliases = map[string]Category{
	"plastic":        Plastic,
	"paper":          Paper,
	"glass":          Glass,
	"metal":          Metal,
	"organic":        Organic,
	"compost":        Organic,
	"e_waste":        EWaste,
	"ewaste":         EWaste,
	"hazardous":      Hazardous,
	"non_recyclable": NonRecyclable,
	"nonrecyclable":  NonRecyclable,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory accepts a display value ("E-waste") or an identifier ("e_waste").
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range allCategories {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	if c, ok := categoryAliases[strings.ReplaceAll(key, "-", "_")]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %q", string(c))
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RawLabelPrediction is a single generic object label produced by an image classifier.
type RawLabelPrediction struct {
	Label       string  `json:"label"`
	Probability float32 `json:"probability"`
}

// AggregatedPrediction is a category with its share of the total probability mass.
// OriginalLabel is the first raw label, in classifier order, that resolved to Category.
type AggregatedPrediction struct {
	Category      Category `json:"category"`
	Confidence    float32  `json:"confidence"`
	OriginalLabel string   `json:"originalLabel"`
}

// Result holds the outcome of analyzing one frame.
type Result struct {
	ID          string                 `json:"id"`
	Predictions []AggregatedPrediction `json:"predictions"`
	Instruction *DisposalInstruction   `json:"instruction,omitempty"`
	Elapsed     time.Duration          `json:"elapsed"`
}

// Top returns the highest ranked prediction, if any.
func (r Result) Top() (AggregatedPrediction, bool) {
	if len(r.Predictions) == 0 {
		return AggregatedPrediction{}, false
	}
	return r.Predictions[0], true
}
