package api

import (
	"encoding/json"
	"net/http"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
)

// Fixed sample records for the settings-form preview pane, so the
// preview looks the same regardless of what is actually approved.
var previewSamples = []display.Image{
	{ID: "sample-1", Path: "samples/beach.jpg", SubmitterName: "Alex", Caption: "Golden hour"},
	{ID: "sample-2", Path: "samples/dancefloor.jpg", SubmitterName: "Sam", Caption: "First dance"},
	{ID: "sample-3", Path: "samples/toast.jpg", SubmitterName: "Riley", Caption: "Cheers!"},
	{ID: "sample-4", Path: "samples/group.jpg", SubmitterName: "Jordan"},
}

type previewRes struct {
	Style   display.Style   `json:"style"`
	Samples []display.Image `json:"samples"`
}

// PreviewStyle derives the half-scale render values for the settings
// form's live preview from the submitted (not yet saved) form state.
// Validation is intentionally loose here, bad values fall back to
// defaults the same way the full-scale display does.
func PreviewStyle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}

		s := db.DisplaySettings{
			DisplayFormat:         in.DisplayFormat,
			AutoRotate:            in.AutoRotate,
			SlideInterval:         in.SlideInterval,
			ShowInfo:              in.ShowInfo,
			ShowCaptions:          in.ShowCaptions,
			SeparateCaptions:      in.SeparateCaptions,
			TransitionEffect:      in.TransitionEffect,
			FontFamily:            in.FontFamily,
			FontSize:              in.FontSize,
			FontColor:             in.FontColor,
			BorderWidth:           in.BorderWidth,
			BorderColor:           in.BorderColor,
			BorderStyle:           in.BorderStyle,
			TextPosition:          in.TextPosition,
			TextAlignment:         in.TextAlignment,
			TextPadding:           in.TextPadding,
			TextMaxWidth:          in.TextMaxWidth,
			TextBackgroundColor:   in.TextBackgroundColor,
			TextBackgroundOpacity: in.TextBackgroundOpacity,
			TextContent:           in.TextContent,
		}

		toJSON(w, http.StatusOK, previewRes{
			Style:   display.DeriveStyle(s, display.PreviewScale),
			Samples: previewSamples,
		})
	}
}
