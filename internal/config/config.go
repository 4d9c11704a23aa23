package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"kanban"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"kanban"`
	DBName     string `envconfig:"DB_NAME" default:"backend_kanban"`

	// JWTSecret signs every token kind; it must never leave the process.
	JWTSecret  string        `envconfig:"JWT_SECRET" default:"default-secret-key-change-me"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"168h"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	MailFrom     string `envconfig:"MAIL_FROM" default:"no-reply@kanban.local"`

	// FrontendURL is the base for confirmation / reset links embedded in
	// outbound emails.
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	CloudinaryURL    string `envconfig:"CLOUDINARY_URL" default:""`
	CloudinaryFolder string `envconfig:"CLOUDINARY_FOLDER" default:"kanban"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
