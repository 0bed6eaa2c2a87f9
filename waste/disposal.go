package waste

// DisposalInstruction is the static presentation and guidance for one category.
type DisposalInstruction struct {
	Category     Category `json:"category"`
	Icon         string   `json:"icon"`
	Color        string   `json:"color"`
	Instructions []string `json:"instructions"`
}

var disposalData = map[Category]DisposalInstruction{
	Plastic: {
		Category: Plastic,
		Icon:     "fa-bottle-water",
		Color:    "#3b82f6",
		Instructions: []string{
			"Rinse out food residue.",
			"Check for local recycling symbols (e.g., PET 1, HDPE 2).",
			"Crush bottles to save space.",
		},
	},
	Paper: {
		Category: Paper,
		Icon:     "fa-newspaper",
		Color:    "#d97706",
		Instructions: []string{
			"Keep paper dry and clean.",
			"Flatten cardboard boxes.",
			"Remove plastic tape or excessive staples.",
		},
	},
	Glass: {
		Category: Glass,
		Icon:     "fa-wine-bottle",
		Color:    "#10b981",
		Instructions: []string{
			"Remove caps and lids.",
			"Rinse thoroughly.",
			"Separate by color if required by your municipality.",
		},
	},
	Metal: {
		Category: Metal,
		Icon:     "fa-can-food",
		Color:    "#6b7280",
		Instructions: []string{
			"Wash aluminum cans.",
			"Place loose lids inside the can.",
			"Ensure it is empty of pressurized contents.",
		},
	},
	Organic: {
		Category: Organic,
		Icon:     "fa-leaf",
		Color:    "#16a34a",
		Instructions: []string{
			"Compost fruit and vegetable scraps.",
			"Avoid meat and dairy in home compost bins.",
			"Use certified compostable bags if using a curbside bin.",
		},
	},
	EWaste: {
		Category: EWaste,
		Icon:     "fa-plug",
		Color:    "#9333ea",
		Instructions: []string{
			"Do NOT throw in regular trash.",
			"Locate specialized e-waste collection centers.",
			"Wipe personal data before disposal.",
		},
	},
	Hazardous: {
		Category: Hazardous,
		Icon:     "fa-biohazard",
		Color:    "#dc2626",
		Instructions: []string{
			"Handle with care.",
			"Keep in original packaging if possible.",
			"Contact local hazardous waste disposal facility.",
		},
	},
	NonRecyclable: {
		Category: NonRecyclable,
		Icon:     "fa-trash-can",
		Color:    "#3f3f46",
		Instructions: []string{
			"Dispose of in standard landfill bin.",
			"Bag tightly to prevent litter.",
			"Consider alternatives to minimize future waste.",
		},
	},
}

// Disposal returns the instructions for c. Unknown categories get the Fallback record.
func Disposal(c Category) DisposalInstruction {
	d, ok := disposalData[c]
	if !ok {
		d = disposalData[Fallback]
	}
	d.Instructions = append([]string(nil), d.Instructions...)
	return d
}
