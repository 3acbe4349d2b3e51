package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	Database struct {
		// Path to the sqlite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/propmatch.db"`
	}

	Matching struct {
		// Whether editing a listing re-notifies alerts that already
		// matched it. The engine keeps no notified-ledger, so turning
		// this on means every update is treated as newsworthy.
		RenotifyOnUpdate bool `env:"MATCH_RENOTIFY_ON_UPDATE" envDefault:"true"`
	}

	// BatchProcessing configuration for the listing ingest pipeline
	BatchProcessing struct {
		// Maximum number of listings to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
