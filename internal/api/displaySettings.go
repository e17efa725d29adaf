package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

type settingsPayload struct {
	BackgroundPath string `json:"background_path"`
	LogoPath       string `json:"logo_path"`

	DisplayFormat string `json:"display_format"`
	AutoRotate    bool   `json:"auto_rotate"`
	SlideInterval int    `json:"slide_interval"`

	ShowInfo         bool `json:"show_info"`
	ShowCaptions     bool `json:"show_captions"`
	SeparateCaptions bool `json:"separate_captions"`

	TransitionEffect string `json:"transition_effect"`

	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
	FontColor  string `json:"font_color"`

	BorderWidth int    `json:"border_width"`
	BorderColor string `json:"border_color"`
	BorderStyle string `json:"border_style"`

	TextPosition          string `json:"text_position"`
	TextAlignment         string `json:"text_alignment"`
	TextPadding           int    `json:"text_padding"`
	TextMaxWidth          int    `json:"text_max_width"`
	TextBackgroundColor   string `json:"text_background_color"`
	TextBackgroundOpacity int    `json:"text_background_opacity"`
	TextContent           string `json:"text_content"`

	BlacklistWords string `json:"blacklist_words"`
}

func settingsToPayload(s db.DisplaySettings) settingsPayload {
	return settingsPayload{
		BackgroundPath:        s.BackgroundPath,
		LogoPath:              s.LogoPath,
		DisplayFormat:         s.DisplayFormat,
		AutoRotate:            s.AutoRotate,
		SlideInterval:         s.SlideInterval,
		ShowInfo:              s.ShowInfo,
		ShowCaptions:          s.ShowCaptions,
		SeparateCaptions:      s.SeparateCaptions,
		TransitionEffect:      s.TransitionEffect,
		FontFamily:            s.FontFamily,
		FontSize:              s.FontSize,
		FontColor:             s.FontColor,
		BorderWidth:           s.BorderWidth,
		BorderColor:           s.BorderColor,
		BorderStyle:           s.BorderStyle,
		TextPosition:          s.TextPosition,
		TextAlignment:         s.TextAlignment,
		TextPadding:           s.TextPadding,
		TextMaxWidth:          s.TextMaxWidth,
		TextBackgroundColor:   s.TextBackgroundColor,
		TextBackgroundOpacity: s.TextBackgroundOpacity,
		TextContent:           s.TextContent,
		BlacklistWords:        s.BlacklistWords,
	}
}

// validateSettings checks the numeric ranges and enum fields, one
// message per bad field.
func validateSettings(in settingsPayload) map[string]string {
	fields := map[string]string{}

	rangeCheck := func(name string, v, lo, hi int) {
		if v < lo || v > hi {
			fields[name] = fmt.Sprintf("must be between %d and %d", lo, hi)
		}
	}
	rangeCheck("slide_interval", in.SlideInterval, 1, 60)
	rangeCheck("font_size", in.FontSize, 8, 72)
	rangeCheck("text_padding", in.TextPadding, 0, 50)
	rangeCheck("text_background_opacity", in.TextBackgroundOpacity, 0, 100)
	rangeCheck("border_width", in.BorderWidth, 0, 20)

	switch in.DisplayFormat {
	case display.FormatDefault, display.FormatMultiple, display.FormatTextOnly:
	default:
		fields["display_format"] = "unknown layout"
	}
	switch in.TransitionEffect {
	case display.EffectSlide, display.EffectFade, display.EffectZoom:
	default:
		fields["transition_effect"] = "unknown effect"
	}
	if !display.ValidTextPosition(in.TextPosition) {
		fields["text_position"] = "unknown position"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// GetDisplaySettings returns the settings for an event, or defaults
// when no row exists yet.
func GetDisplaySettings(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := resolveEvent(r.Context(), gdb, r.URL.Query().Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		var s db.DisplaySettings
		err = gdb.WithContext(r.Context()).Where("event_id = ?", ev.ID).First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = db.DefaultSettings(ev.ID)
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		toJSON(w, http.StatusOK, settingsToPayload(s))
	}
}

// UpsertDisplaySettings replaces the full settings record for an event
// after validating it, then wakes the display.
func UpsertDisplaySettings(gdb *gorm.DB, notifier *display.Notifier, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}

		if fields := validateSettings(in); fields != nil {
			writeFieldErrors(w, fields)
			return
		}

		ev, err := resolveEvent(r.Context(), gdb, r.URL.Query().Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		s := db.DisplaySettings{
			ID:                    uuid.NewString(),
			EventID:               ev.ID,
			BackgroundPath:        in.BackgroundPath,
			LogoPath:              in.LogoPath,
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
			BlacklistWords:        in.BlacklistWords,
			UpdatedAt:             time.Now().UTC(),
		}

		if err := gdb.WithContext(r.Context()).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			UpdateAll: true,
		}).Create(&s).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db_update_failed")
			return
		}

		notifier.Notify(ev.ID)
		hub.NotifyChange(ev.ID, ws.MsgSettingsChanged)

		toJSON(w, http.StatusOK, settingsToPayload(s))
	}
}
