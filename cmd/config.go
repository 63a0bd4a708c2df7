package cmd

import (
	"fmt"
	"time"
)

// Config carries everything the service reads from its environment.
// Field defaults match a local development setup; production deployments
// override them through environment variables or the .env file.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"tumafast"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	Currency        string `env:"CURRENCY" envDefault:"KES"`
	TrackingBaseURL string `env:"TRACKING_BASE_URL" envDefault:"https://tumafast.co.ke/track/"`

	WebhookTimeout   time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	RelaySchedule    string        `env:"RELAY_SCHEDULE" envDefault:"*/5 * * * * *"`
	RelayBatchSize   int           `env:"RELAY_BATCH_SIZE" envDefault:"50"`
	RelayMaxAttempts int           `env:"RELAY_MAX_ATTEMPTS" envDefault:"5"`
	RelayBackoffBase time.Duration `env:"RELAY_BACKOFF_BASE" envDefault:"30s"`
	RelayTickTimeout time.Duration `env:"RELAY_TICK_TIMEOUT" envDefault:"1m"`
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
