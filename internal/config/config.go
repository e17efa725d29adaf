package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob, loaded from the environment.
type Config struct {
	Addr      string `env:"FANPHOTO_ADDR" envDefault:":8080"`
	DBPath    string `env:"FANPHOTO_DB_PATH" envDefault:"fanphoto.db"`
	UploadDir string `env:"FANPHOTO_UPLOAD_DIR" envDefault:"uploads"`

	AdminUser     string `env:"FANPHOTO_ADMIN_USER" envDefault:"admin"`
	AdminPassword string `env:"FANPHOTO_ADMIN_PASSWORD" envDefault:"admin"`
	JWTSecret     string `env:"FANPHOTO_JWT_SECRET" envDefault:"change-me"`

	DefaultEventName string `env:"FANPHOTO_EVENT_NAME" envDefault:"Event"`
	DefaultEventSlug string `env:"FANPHOTO_EVENT_SLUG" envDefault:"default"`

	// Uploads larger than this are rejected, in megabytes.
	MaxUploadMB int64 `env:"FANPHOTO_MAX_UPLOAD_MB" envDefault:"20"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
