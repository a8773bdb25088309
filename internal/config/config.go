package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the prefix of all environment variables read by LoadFromEnv.
const Prefix = "gradestat"

// Config represents the defaults of the command line flags. Flags given
// explicitly on the command line take precedence.
type Config struct {
	Order       string `default:"desc"`
	Format      string `default:"tsv"`
	LogLevel    string `split_words:"true" default:"warn"`
	Workers     uint   `default:"2"`
	Compression string `default:"auto"`
	Header      string `default:"sorted"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	config := new(Config)
	if err := envconfig.Process(Prefix, config); err != nil {
		return nil, err
	}
	return config, nil
}
