package vision

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Label is one class of the model output with its probability.
type Label struct {
	Name        string
	Probability float32
}

// Probabilities converts raw model output to a probability distribution. Outputs
// that already form a distribution (a model with a softmax head) pass through.
func Probabilities(output []float32) []float64 {
	x := make([]float64, len(output))
	for i, v := range output {
		x[i] = float64(v)
	}
	if len(x) == 0 || isDistribution(x) {
		return x
	}
	floats.AddConst(-floats.Max(x), x)
	for i := range x {
		x[i] = math.Exp(x[i])
	}
	if sum := floats.Sum(x); sum > 0 {
		floats.Scale(1/sum, x)
	}
	return x
}

func isDistribution(x []float64) bool {
	for _, v := range x {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return math.Abs(floats.Sum(x)-1) < 1e-3
}

// TopK returns the k most probable classes, best first. When the output has one
// more class than labels, index 0 is treated as a background class and skipped.
func TopK(probs []float64, labels []string, k int) []Label {
	offset := 0
	if len(labels) > 0 && len(probs) == len(labels)+1 {
		offset = 1
	}
	idx := make([]int, 0, len(probs)-offset)
	for i := offset; i < len(probs); i++ {
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})
	if k > 0 && len(idx) > k {
		idx = idx[:k]
	}
	out := make([]Label, len(idx))
	for i, j := range idx {
		out[i] = Label{Name: labelName(labels, j-offset), Probability: float32(probs[j])}
	}
	return out
}

func labelName(labels []string, i int) string {
	if i >= 0 && i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("class %d", i)
}
