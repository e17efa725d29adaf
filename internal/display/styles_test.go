package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexToRGBA(t *testing.T) {
	tests := []struct {
		hex     string
		opacity int
		want    string
		ok      bool
	}{
		{"#000000", 50, "rgba(0,0,0,0.5)", true},
		{"#ffffff", 100, "rgba(255,255,255,1)", true},
		{"#FF8000", 0, "rgba(255,128,0,0)", true},
		{"#1a2b3c", 25, "rgba(26,43,60,0.25)", true},
		{"red", 50, "", false},
		{"#fff", 50, "", false},
		{"#gggggg", 50, "", false},
		{"", 50, "", false},
		{"#00000000", 50, "", false},
	}
	for _, tt := range tests {
		got, ok := HexToRGBA(tt.hex, tt.opacity)
		assert.Equal(t, tt.ok, ok, "hex=%q", tt.hex)
		assert.Equal(t, tt.want, got, "hex=%q", tt.hex)
	}
}

func TestHexToRGBAClampsOpacity(t *testing.T) {
	got, ok := HexToRGBA("#000000", 150)
	assert.True(t, ok)
	assert.Equal(t, "rgba(0,0,0,1)", got)

	got, ok = HexToRGBA("#000000", -10)
	assert.True(t, ok)
	assert.Equal(t, "rgba(0,0,0,0)", got)
}

func TestResolveFormatFallsBackToDefault(t *testing.T) {
	assert.Equal(t, FormatMultiple, ResolveFormat(FormatMultiple))
	assert.Equal(t, FormatTextOnly, ResolveFormat(FormatTextOnly))
	assert.Equal(t, FormatDefault, ResolveFormat("hologram"))
	assert.Equal(t, FormatDefault, ResolveFormat(""))
}

func TestResolveEffect(t *testing.T) {
	assert.Equal(t, EffectZoom, ResolveEffect(EffectZoom))
	assert.Equal(t, EffectSlide, ResolveEffect("spin"))
}

func TestGridImagesCapsAtFour(t *testing.T) {
	assert.Len(t, GridImages(images(7)), GridMax)
	assert.Len(t, GridImages(images(2)), 2)
	assert.Empty(t, GridImages(nil))
}
