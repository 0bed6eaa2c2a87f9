package waste

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pass names the resolution stage that produced a category.
type Pass string

const (
	PassExact    Pass = "exact"
	PassKeyword  Pass = "keyword"
	PassFallback Pass = "fallback"
)

// Resolution explains how a label was mapped.
type Resolution struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Pass     Pass     `json:"pass"`
	Key      string   `json:"key,omitempty"`
}

// Resolver maps classifier labels to categories. It is immutable once built and
// safe for concurrent use.
type Resolver struct {
	mappings []Mapping
	keywords []KeywordRule
}

var defaultResolver = NewResolver(DefaultTables())

// DefaultResolver returns the resolver built from the built-in tables.
func DefaultResolver() *Resolver {
	return defaultResolver
}

// NewResolver builds a resolver from the given tables, preserving their order.
// Keys are normalized and empty keys are dropped, since they would match any label.
func NewResolver(t Tables) *Resolver {
	r := &Resolver{
		mappings: make([]Mapping, 0, len(t.Mappings)),
		keywords: make([]KeywordRule, 0, len(t.Keywords)),
	}
	for _, m := range t.Mappings {
		key := normalizeKey(m.Key)
		if key == "" || !m.Category.Valid() {
			continue
		}
		r.mappings = append(r.mappings, Mapping{Key: key, Category: m.Category})
	}
	for _, rule := range t.Keywords {
		if !rule.Category.Valid() {
			continue
		}
		words := normalizeKeywordList(rule.Keywords)
		if len(words) == 0 {
			continue
		}
		r.keywords = append(r.keywords, KeywordRule{Keywords: words, Category: rule.Category})
	}
	return r
}

// Tables returns a copy of the tables the resolver was built with, after normalization.
func (r *Resolver) Tables() Tables {
	return Tables{
		Mappings: cloneMappings(r.mappings),
		Keywords: cloneKeywordRules(r.keywords),
	}
}

// Resolve returns the category for label. It never fails; unmatched labels get Fallback.
func (r *Resolver) Resolve(label string) Category {
	return r.Explain(label).Category
}

// Explain resolves label and reports which table entry decided the result.
func (r *Resolver) Explain(label string) Resolution {
	normalized := lower(label)
	for _, m := range r.mappings {
		if contains(normalized, m.Key) {
			return Resolution{Label: label, Category: m.Category, Pass: PassExact, Key: m.Key}
		}
	}
	for _, rule := range r.keywords {
		for _, kw := range rule.Keywords {
			if contains(normalized, kw) {
				return Resolution{Label: label, Category: rule.Category, Pass: PassKeyword, Key: kw}
			}
		}
	}
	return Resolution{Label: label, Category: Fallback, Pass: PassFallback}
}

// Resolve maps label with the built-in tables.
func Resolve(label string) Category {
	return defaultResolver.Resolve(label)
}

// lower uses a fresh Caser per call because a Caser is not safe for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
