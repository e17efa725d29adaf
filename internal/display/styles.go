package display

import (
	"fmt"
	"regexp"
	"strconv"
)

// Layout variants
const (
	FormatDefault  = "16:9-default"
	FormatMultiple = "16:9-multiple"
	FormatTextOnly = "text-only"
)

// Transition effects
const (
	EffectSlide = "slide"
	EffectFade  = "fade"
	EffectZoom  = "zoom"
)

// Text placement relative to the image
var TextPositions = []string{
	"overlay-top", "overlay-bottom",
	"above-image", "below-image",
	"left-of-image", "right-of-image",
}

// The grid variant never shows more than four images at once.
const GridMax = 4

// ResolveFormat maps an unrecognized format key to the single-image
// default so a bad settings row never blanks the display.
func ResolveFormat(format string) string {
	switch format {
	case FormatDefault, FormatMultiple, FormatTextOnly:
		return format
	default:
		return FormatDefault
	}
}

// ResolveEffect falls back to slide for unknown transition effects.
func ResolveEffect(effect string) string {
	switch effect {
	case EffectSlide, EffectFade, EffectZoom:
		return effect
	default:
		return EffectSlide
	}
}

// ValidTextPosition reports whether p is a known placement key.
func ValidTextPosition(p string) bool {
	for _, v := range TextPositions {
		if v == p {
			return true
		}
	}
	return false
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// HexToRGBA converts a 6-digit hex color and an opacity percentage
// into an rgba() value. Returns false on anything that is not #RRGGBB,
// leaving the caller to pick a default.
func HexToRGBA(hex string, opacityPct int) (string, bool) {
	if !hexColor.MatchString(hex) {
		return "", false
	}
	if opacityPct < 0 {
		opacityPct = 0
	}
	if opacityPct > 100 {
		opacityPct = 100
	}
	r, _ := strconv.ParseInt(hex[1:3], 16, 0)
	g, _ := strconv.ParseInt(hex[3:5], 16, 0)
	b, _ := strconv.ParseInt(hex[5:7], 16, 0)
	alpha := strconv.FormatFloat(float64(opacityPct)/100, 'g', -1, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, alpha), true
}

// GridImages returns at most GridMax images for the multi-image layout.
func GridImages(imgs []Image) []Image {
	if len(imgs) <= GridMax {
		return imgs
	}
	return imgs[:GridMax]
}
