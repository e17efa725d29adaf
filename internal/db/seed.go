package db

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedAdmin makes sure an admin login exists. Password is only hashed
// on first run, existing rows are left alone.
func SeedAdmin(gdb *gorm.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error
}

// SeedDefaultEvent creates the default event and its display settings
// record so a fresh install has something to point the display at.
func SeedDefaultEvent(gdb *gorm.DB, name, slug string) error {
	ev := Event{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&ev).Error; err != nil {
		return err
	}

	// Slug may have existed already, settings hang off the stored row
	var stored Event
	if err := gdb.Where("slug = ?", slug).First(&stored).Error; err != nil {
		return err
	}
	s := DefaultSettings(stored.ID)
	return gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error
}

// DefaultSettings returns the settings record a new event starts with.
func DefaultSettings(eventID string) DisplaySettings {
	return DisplaySettings{
		ID:                    uuid.NewString(),
		EventID:               eventID,
		DisplayFormat:         "16:9-default",
		AutoRotate:            true,
		SlideInterval:         8,
		ShowInfo:              true,
		ShowCaptions:          true,
		SeparateCaptions:      false,
		TransitionEffect:      "slide",
		FontFamily:            "sans-serif",
		FontSize:              16,
		FontColor:             "#ffffff",
		BorderWidth:           0,
		BorderColor:           "#000000",
		BorderStyle:           "solid",
		TextPosition:          "overlay-bottom",
		TextAlignment:         "center",
		TextPadding:           10,
		TextMaxWidth:          80,
		TextBackgroundColor:   "#000000",
		TextBackgroundOpacity: 50,
		UpdatedAt:             time.Now().UTC(),
	}
}
