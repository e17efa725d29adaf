package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

func sampleSettings() db.DisplaySettings {
	s := db.DefaultSettings("ev-1")
	s.FontSize = 24
	s.TextPadding = 15
	s.BorderWidth = 6
	s.TextMaxWidth = 80
	s.TextBackgroundColor = "#000000"
	s.TextBackgroundOpacity = 50
	return s
}

func TestDeriveStyleFullScale(t *testing.T) {
	st := DeriveStyle(sampleSettings(), FullScale)

	assert.Equal(t, 24, st.FontSizePx)
	assert.Equal(t, 15, st.TextPaddingPx)
	assert.Equal(t, 6, st.BorderWidthPx)
	assert.Equal(t, "rgba(0,0,0,0.5)", st.TextBackground)
	assert.Equal(t, FormatDefault, st.Format)
}

func TestDeriveStylePreviewHalvesSizes(t *testing.T) {
	st := DeriveStyle(sampleSettings(), PreviewScale)

	assert.Equal(t, 12, st.FontSizePx)
	assert.Equal(t, 8, st.TextPaddingPx) // 7.5 rounds up
	assert.Equal(t, 3, st.BorderWidthPx)
	// percentages and colors are not scaled
	assert.Equal(t, 80, st.TextMaxWidthPct)
	assert.Equal(t, "rgba(0,0,0,0.5)", st.TextBackground)
}

func TestDeriveStyleBadColorFallsBack(t *testing.T) {
	s := sampleSettings()
	s.TextBackgroundColor = "red"
	st := DeriveStyle(s, FullScale)
	assert.Equal(t, "rgba(0,0,0,0.5)", st.TextBackground)
}

func TestDeriveStyleUnknownKeysFallBack(t *testing.T) {
	s := sampleSettings()
	s.DisplayFormat = "diorama"
	s.TransitionEffect = "wobble"
	s.TextPosition = "under-the-rug"

	st := DeriveStyle(s, FullScale)
	assert.Equal(t, FormatDefault, st.Format)
	assert.Equal(t, EffectSlide, st.Effect)
	assert.Equal(t, "overlay-bottom", st.TextPosition)
}

func TestDeriveStyleIsIdempotent(t *testing.T) {
	s := sampleSettings()
	first := DeriveStyle(s, FullScale)
	second := DeriveStyle(s, FullScale)
	assert.Equal(t, first, second)
}
