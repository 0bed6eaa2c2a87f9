package waste

// Mapping routes any label containing Key to Category.
type Mapping struct {
	Key      string   `json:"key"`
	Category Category `json:"category"`
}

// KeywordRule routes any label containing one of Keywords to Category.
type KeywordRule struct {
	Keywords []string `json:"keywords"`
	Category Category `json:"category"`
}

// Tables is the pair of ordered lookup tables used by a Resolver.
// Order is significant in both: the first matching entry wins.
type Tables struct {
	Mappings []Mapping     `json:"mappings"`
	Keywords []KeywordRule `json:"keywords"`
}

// Keys are matched as substrings of the lower-cased label, so an earlier short key
// shadows a later longer one ("can" is reached before "ashcan").
var defaultMappings = []Mapping{
	{Key: "water bottle", Category: Plastic},
	{Key: "pill bottle", Category: Plastic},
	{Key: "lotion", Category: Plastic},
	{Key: "soap dispenser", Category: Plastic},
	{Key: "plastic bag", Category: Plastic},
	{Key: "shampoo", Category: Plastic},

	{Key: "envelope", Category: Paper},
	{Key: "carton", Category: Paper},
	{Key: "book", Category: Paper},
	{Key: "packet", Category: Paper},
	{Key: "paper towel", Category: Paper},
	{Key: "tissue", Category: Paper},
	{Key: "comic book", Category: Paper},

	{Key: "beer bottle", Category: Glass},
	{Key: "wine bottle", Category: Glass},
	{Key: "glass bottle", Category: Glass},
	{Key: "jar", Category: Glass},
	{Key: "goblet", Category: Glass},
	{Key: "beaker", Category: Glass},

	{Key: "can", Category: Metal},
	{Key: "pot", Category: Metal},
	{Key: "tin", Category: Metal},
	{Key: "hammer", Category: Metal},
	{Key: "wrench", Category: Metal},
	{Key: "screw", Category: Metal},
	{Key: "safety pin", Category: Metal},

	{Key: "banana", Category: Organic},
	{Key: "apple", Category: Organic},
	{Key: "orange", Category: Organic},
	{Key: "lemon", Category: Organic},
	{Key: "pomegranate", Category: Organic},
	{Key: "strawberry", Category: Organic},
	{Key: "pineapple", Category: Organic},
	{Key: "custard apple", Category: Organic},
	{Key: "zucchini", Category: Organic},
	{Key: "cucumber", Category: Organic},
	{Key: "bell pepper", Category: Organic},
	{Key: "head of cabbage", Category: Organic},
	{Key: "broccoli", Category: Organic},
	{Key: "cauliflower", Category: Organic},
	{Key: "ear of corn", Category: Organic},
	{Key: "acorn squash", Category: Organic},

	{Key: "laptop", Category: EWaste},
	{Key: "notebook computer", Category: EWaste},
	{Key: "mouse", Category: EWaste},
	{Key: "keyboard", Category: EWaste},
	{Key: "cellular telephone", Category: EWaste},
	{Key: "joystick", Category: EWaste},
	{Key: "monitor", Category: EWaste},
	{Key: "television", Category: EWaste},
	{Key: "remote control", Category: EWaste},
	{Key: "hard disc", Category: EWaste},

	{Key: "battery", Category: Hazardous},
	{Key: "syringe", Category: Hazardous},
	{Key: "spray", Category: Hazardous},

	{Key: "ashcan", Category: NonRecyclable},
	{Key: "garbage truck", Category: NonRecyclable},
}

var defaultKeywordRules = []KeywordRule{
	{Keywords: []string{"bottle", "plastic", "tupperware"}, Category: Plastic},
	{Keywords: []string{"paper", "magazine", "book", "cardboard"}, Category: Paper},
	{Keywords: []string{"glass", "jar", "wine", "beer"}, Category: Glass},
	{Keywords: []string{"can", "metal", "tool", "tin"}, Category: Metal},
	{Keywords: []string{"fruit", "vegetable", "food", "plant", "flower", "tree"}, Category: Organic},
	{Keywords: []string{"computer", "phone", "tablet", "electronics", "device", "remote"}, Category: EWaste},
	{Keywords: []string{"battery", "gas", "chemical"}, Category: Hazardous},
}

// DefaultTables returns a copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Mappings: cloneMappings(defaultMappings),
		Keywords: cloneKeywordRules(defaultKeywordRules),
	}
}

func (t Tables) clone() Tables {
	return Tables{
		Mappings: cloneMappings(t.Mappings),
		Keywords: cloneKeywordRules(t.Keywords),
	}
}

// withDefaults fills tables left nil with the built-in ones. An explicitly empty
// table stays empty.
func (t Tables) withDefaults() Tables {
	out := t.clone()
	if t.Mappings == nil {
		out.Mappings = cloneMappings(defaultMappings)
	}
	if t.Keywords == nil {
		out.Keywords = cloneKeywordRules(defaultKeywordRules)
	}
	return out
}

func cloneMappings(src []Mapping) []Mapping {
	if src == nil {
		return nil
	}
	out := make([]Mapping, len(src))
	copy(out, src)
	return out
}

func cloneKeywordRules(src []KeywordRule) []KeywordRule {
	if src == nil {
		return nil
	}
	out := make([]KeywordRule, len(src))
	for i, r := range src {
		out[i] = KeywordRule{
			Keywords: append([]string(nil), r.Keywords...),
			Category: r.Category,
		}
	}
	return out
}
