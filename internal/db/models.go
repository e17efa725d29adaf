package db

import (
	"strings"
	"time"
)

// Photo moderation statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusArchived = "archived"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:text"`
	Name        string `gorm:"type:text;not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool `gorm:"default:true"`
	CreatedAt   time.Time

	Photos   []Photo          `gorm:"foreignKey:EventID"`
	Settings *DisplaySettings `gorm:"foreignKey:EventID"`
}

type Photo struct {
	ID            string `gorm:"primaryKey;type:text"`
	EventID       string `gorm:"index;not null"`
	OriginalPath  string `gorm:"not null"`
	ThumbnailPath string
	SubmitterName string
	Caption       string `gorm:"type:text"`
	Status        string `gorm:"index;not null;default:pending"`
	// nil sorts after every photo with an assigned order
	DisplayOrder *int `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Event Event `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID"`
}

// DisplaySettings is a singleton record per event, upserted by the
// admin settings form and read by the slideshow display.
type DisplaySettings struct {
	ID      string `gorm:"primaryKey;type:text"`
	EventID string `gorm:"uniqueIndex;not null"`

	BackgroundPath string
	LogoPath       string

	DisplayFormat string `gorm:"default:16:9-default"`
	AutoRotate    bool   `gorm:"default:true"`
	SlideInterval int    `gorm:"default:8"`

	ShowInfo         bool `gorm:"default:true"`
	ShowCaptions     bool `gorm:"default:true"`
	SeparateCaptions bool `gorm:"default:false"`

	TransitionEffect string `gorm:"default:slide"`

	FontFamily string `gorm:"default:sans-serif"`
	FontSize   int    `gorm:"default:16"`
	FontColor  string `gorm:"default:#ffffff"`

	BorderWidth int    `gorm:"default:0"`
	BorderColor string `gorm:"default:#000000"`
	BorderStyle string `gorm:"default:solid"`

	TextPosition          string `gorm:"default:overlay-bottom"`
	TextAlignment         string `gorm:"default:center"`
	TextPadding           int    `gorm:"default:10"`
	TextMaxWidth          int    `gorm:"default:80"`
	TextBackgroundColor   string `gorm:"default:#000000"`
	TextBackgroundOpacity int    `gorm:"default:50"`
	TextContent           string `gorm:"type:text"`

	BlacklistWords string `gorm:"type:text"`

	UpdatedAt time.Time

	Event Event `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID"`
}

// AnalyticsDaily holds per-event per-day counters. Increment only.
type AnalyticsDaily struct {
	EventID string `gorm:"primaryKey;type:text"`
	Date    string `gorm:"primaryKey;type:text"` // YYYY-MM-DD

	Uploads  int `gorm:"default:0"`
	Views    int `gorm:"default:0"`
	QRScans  int `gorm:"default:0"`
	Approved int `gorm:"default:0"`
	Rejected int `gorm:"default:0"`
	Archived int `gorm:"default:0"`

	Event Event `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID"`
}

func (AnalyticsDaily) TableName() string { return "analytics_daily" }

type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// SplitBlacklist parses a free-text blacklist into lowercase entries.
// Entries are separated by commas or newlines, so a multi-word phrase
// stays one entry.
func SplitBlacklist(list string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// BlacklistMatch reports whether any blacklist entry occurs in any of
// the given texts, case-insensitively.
func BlacklistMatch(list string, texts ...string) bool {
	words := SplitBlacklist(list)
	if len(words) == 0 {
		return false
	}
	for _, t := range texts {
		t = strings.ToLower(t)
		for _, w := range words {
			if strings.Contains(t, w) {
				return true
			}
		}
	}
	return false
}

// ValidTransition reports whether a moderation action may move a photo
// from one status to another: pending -> {approved, rejected},
// approved <-> archived.
func ValidTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusArchived
	case StatusArchived:
		return to == StatusApproved
	default:
		return false
	}
}
