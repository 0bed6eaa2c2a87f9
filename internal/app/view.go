package app

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"yashubustudio/wastesorter/waste"
)

// resultView is the display form of one analyzed frame.
type resultView struct {
	Category     string
	Confidence   string
	Detected     string
	Steps        string
	Alternatives string
	Color        color.Color
}

func newResultView(res waste.Result) resultView {
	top, ok := res.Top()
	if !ok {
		return resultView{
			Category: "No item detected",
			Color:    parseHexColor(waste.Disposal(waste.Fallback).Color),
		}
	}
	d := waste.Disposal(top.Category)
	if res.Instruction != nil {
		d = *res.Instruction
	}
	v := resultView{
		Category:   top.Category.String(),
		Confidence: formatPercent(top.Confidence),
		Detected:   "Detected: " + top.OriginalLabel,
		Color:      parseHexColor(d.Color),
	}
	steps := make([]string, len(d.Instructions))
	for i, s := range d.Instructions {
		steps[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	v.Steps = strings.Join(steps, "\n")

	if len(res.Predictions) > 1 {
		alts := make([]string, 0, len(res.Predictions)-1)
		for _, p := range res.Predictions[1:] {
			alts = append(alts, fmt.Sprintf("%s  %s", p.Category, formatPercent(p.Confidence)))
		}
		v.Alternatives = strings.Join(alts, "\n")
	}
	return v
}

func formatPercent(v float32) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// parseHexColor reads "#rrggbb"; anything else yields mid grey.
func parseHexColor(s string) color.Color {
	fallback := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
