package display

import (
	"math"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

// Scale factors for the two render targets. The settings-form preview
// renders at half scale so it fits a smaller viewport.
const (
	FullScale    = 1.0
	PreviewScale = 0.5
)

const fallbackTextBackground = "rgba(0,0,0,0.5)"

// Style is the set of derived presentation values for one render. It
// is a pure projection of a settings row, the same snapshot always
// derives the same style.
type Style struct {
	Format string `json:"format"`
	Effect string `json:"effect"`

	FontFamily string `json:"font_family"`
	FontSizePx int    `json:"font_size_px"`
	FontColor  string `json:"font_color"`

	BorderWidthPx int    `json:"border_width_px"`
	BorderColor   string `json:"border_color"`
	BorderStyle   string `json:"border_style"`

	TextPosition    string `json:"text_position"`
	TextAlignment   string `json:"text_alignment"`
	TextPaddingPx   int    `json:"text_padding_px"`
	TextMaxWidthPct int    `json:"text_max_width_pct"`
	TextBackground  string `json:"text_background"`

	ShowInfo         bool `json:"show_info"`
	ShowCaptions     bool `json:"show_captions"`
	SeparateCaptions bool `json:"separate_captions"`
}

func scalePx(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

// DeriveStyle computes the render values for a settings row at the
// given scale. Font, padding and border sizes scale; percentages and
// colors do not. A malformed background color falls back to a neutral
// half-opacity black instead of failing the render.
func DeriveStyle(s db.DisplaySettings, scale float64) Style {
	bg, ok := HexToRGBA(s.TextBackgroundColor, s.TextBackgroundOpacity)
	if !ok {
		bg = fallbackTextBackground
	}

	pos := s.TextPosition
	if !ValidTextPosition(pos) {
		pos = "overlay-bottom"
	}

	return Style{
		Format: ResolveFormat(s.DisplayFormat),
		Effect: ResolveEffect(s.TransitionEffect),

		FontFamily: s.FontFamily,
		FontSizePx: scalePx(s.FontSize, scale),
		FontColor:  s.FontColor,

		BorderWidthPx: scalePx(s.BorderWidth, scale),
		BorderColor:   s.BorderColor,
		BorderStyle:   s.BorderStyle,

		TextPosition:    pos,
		TextAlignment:   s.TextAlignment,
		TextPaddingPx:   scalePx(s.TextPadding, scale),
		TextMaxWidthPct: s.TextMaxWidth,
		TextBackground:  bg,

		ShowInfo:         s.ShowInfo,
		ShowCaptions:     s.ShowCaptions,
		SeparateCaptions: s.SeparateCaptions,
	}
}
