package types

// PreviewStyle carries the subset of cell styling the live preview renders.
type PreviewStyle struct {
	Background string `json:"background,omitempty"`
	Color      string `json:"color,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Align      string `json:"align,omitempty"`
}

// PreviewCell is one cell of the simplified preview grid. Previews carry
// no formulas; derived values are shown as placeholder text.
type PreviewCell struct {
	Value    string        `json:"value"`
	IsHeader bool          `json:"isHeader,omitempty"`
	ColSpan  int           `json:"colSpan,omitempty"`
	Style    *PreviewStyle `json:"style,omitempty"`
}

// PreviewRow is an ordered row of preview cells.
type PreviewRow []PreviewCell
