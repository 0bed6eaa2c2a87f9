package waste

import (
	"math"
	"sort"
)

// MaxPredictions is how many categories Aggregate reports.
const MaxPredictions = 3

type categoryScore struct {
	category Category
	total    float64
	label    string
}

// Aggregate groups raw labels into categories using the built-in tables and returns
// the top MaxPredictions by normalized confidence.
func Aggregate(raw []RawLabelPrediction) []AggregatedPrediction {
	return defaultResolver.Aggregate(raw, MaxPredictions)
}

// Aggregate groups raw labels by resolved category, normalizes the summed
// probabilities over all categories present and returns at most limit entries,
// best first. A limit <= 0 returns every category. Normalization happens before
// truncation, so a truncated result sums to less than 1.
func (r *Resolver) Aggregate(raw []RawLabelPrediction, limit int) []AggregatedPrediction {
	if len(raw) == 0 {
		return []AggregatedPrediction{}
	}
	scores := make([]categoryScore, 0, len(raw))
	index := make(map[Category]int, len(raw))
	for _, pred := range raw {
		category := r.Resolve(pred.Label)
		i, ok := index[category]
		if !ok {
			i = len(scores)
			index[category] = i
			scores = append(scores, categoryScore{category: category, label: pred.Label})
		}
		scores[i].total += probability(pred.Probability)
	}

	var grandTotal float64
	for _, s := range scores {
		grandTotal += s.total
	}
	if grandTotal == 0 {
		return []AggregatedPrediction{}
	}

	out := make([]AggregatedPrediction, len(scores))
	for i, s := range scores {
		out[i] = AggregatedPrediction{
			Category:      s.category,
			Confidence:    float32(s.total / grandTotal),
			OriginalLabel: s.label,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func probability(p float32) float64 {
	v := float64(p)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
