package waste

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		label string
		want  Category
		pass  Pass
	}{
		{"water bottle", Plastic, PassExact},
		{"Plastic Bag", Plastic, PassExact},
		{"banana", Organic, PassExact},
		{"ORANGE", Organic, PassExact},
		{"hammer", Metal, PassExact},
		{"beer bottle", Glass, PassExact},
		{"cellular telephone, cellular phone", EWaste, PassExact},
		{"garbage truck", NonRecyclable, PassExact},
		{"cardboard box", Paper, PassKeyword},
		{"tool kit", Metal, PassKeyword},
		{"gas pump", Hazardous, PassKeyword},
		{"unknown_widget", NonRecyclable, PassFallback},
		{"daisy", NonRecyclable, PassFallback},
		{"", NonRecyclable, PassFallback},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := DefaultResolver().Explain(tt.label)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.pass, got.Pass)
			assert.Equal(t, tt.want, Resolve(tt.label))
		})
	}
}

func TestResolveFirstMatchByTableOrder(t *testing.T) {
	// "can" is listed before "ashcan", so the trash can itself lands in Metal.
	got := DefaultResolver().Explain("ashcan, trash can, garbage can")
	assert.Equal(t, Metal, got.Category)
	assert.Equal(t, "can", got.Key)

	// "book" precedes "notebook computer".
	got = DefaultResolver().Explain("notebook, notebook computer")
	assert.Equal(t, Paper, got.Category)
	assert.Equal(t, "book", got.Key)
}

func TestResolveExactPassBeatsKeywordPass(t *testing.T) {
	// "plant" is an organic keyword, but "pot" is a mapping key.
	got := DefaultResolver().Explain("plant pot")
	assert.Equal(t, Metal, got.Category)
	assert.Equal(t, PassExact, got.Pass)

	r := NewResolver(Tables{
		Mappings: []Mapping{{Key: "widget", Category: EWaste}},
		Keywords: []KeywordRule{{Keywords: []string{"blue"}, Category: Glass}},
	})
	assert.Equal(t, EWaste, r.Resolve("blue widget"))
	assert.Equal(t, Glass, r.Resolve("blue thing"))
}

func TestNewResolverDropsEmptyKeys(t *testing.T) {
	r := NewResolver(Tables{
		Mappings: []Mapping{{Key: "  ", Category: Plastic}, {Key: "", Category: Paper}},
		Keywords: []KeywordRule{{Keywords: []string{""}, Category: Glass}},
	})
	assert.Equal(t, NonRecyclable, r.Resolve("anything at all"))
	assert.Empty(t, r.Tables().Mappings)
	assert.Empty(t, r.Tables().Keywords)
}

func TestNewResolverNormalizesKeys(t *testing.T) {
	r := NewResolver(Tables{
		Mappings: []Mapping{{Key: "  Coffee   MUG ", Category: Glass}},
	})
	require.Len(t, r.Tables().Mappings, 1)
	assert.Equal(t, "coffee mug", r.Tables().Mappings[0].Key)
	assert.Equal(t, Glass, r.Resolve("Coffee mug"))
}

func TestResolveIsTotal(t *testing.T) {
	labels := []string{
		"tench, Tinca tinca", "goldfish", "great white shark", "analog clock",
		"espresso", "paper towel", "pop bottle, soda bottle", "screwdriver",
		"ÉCRAN", "香蕉", "   ", "remote control, remote",
	}
	for _, label := range labels {
		assert.True(t, Resolve(label).Valid(), label)
	}
}

func TestResolveDeterministicAcrossGoroutines(t *testing.T) {
	labels := []string{"water bottle", "hammer", "ashcan", "daisy", "tool kit"}
	want := make([]Category, len(labels))
	for i, l := range labels {
		want[i] = Resolve(l)
	}
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, l := range labels {
				if got := Resolve(l); got != want[i] {
					errs <- l
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for l := range errs {
		t.Errorf("resolve %q changed between calls", l)
	}
}
