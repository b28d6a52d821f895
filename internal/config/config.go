package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide configuration. Each token class has its own
// secret so leaking one does not compromise the others.
type Config struct {
	Port          string `env:"PORT"           envDefault:"5000"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"elearning"`

	TokenIssuer      string `env:"TOKEN_ISSUER" envDefault:"elearning-api"`
	ActivationSecret string `env:"ACTIVATION_SECRET"`
	SessionSecret    string `env:"JWT_SECRET"`
	ResetSecret      string `env:"FORGOT_SECRET"`

	ActivationTokenExpiresIn time.Duration `env:"ACTIVATION_TOKEN_EXPIRES_IN" envDefault:"5m"`
	SessionTokenExpiresIn    time.Duration `env:"SESSION_TOKEN_EXPIRES_IN"    envDefault:"360h"`
	ResetTokenExpiresIn      time.Duration `env:"RESET_TOKEN_EXPIRES_IN"      envDefault:"5m"`

	RazorpayKey    string `env:"RAZORPAY_KEY"`
	RazorpaySecret string `env:"RAZORPAY_SECRET"`

	AppResetURL string `env:"APP_RESET_URL" envDefault:"http://localhost:5173/reset-password"`
	UploadDir   string `env:"UPLOAD_DIR"    envDefault:"uploads"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate fails closed when any secret or connection setting is missing, so
// the server never starts in a state where it would issue unsigned tokens.
func (c *Config) validate() error {
	required := map[string]string{
		"MONGO_URI":         c.MongoURI,
		"ACTIVATION_SECRET": c.ActivationSecret,
		"JWT_SECRET":        c.SessionSecret,
		"FORGOT_SECRET":     c.ResetSecret,
		"RAZORPAY_KEY":      c.RazorpayKey,
		"RAZORPAY_SECRET":   c.RazorpaySecret,
	}

	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing %s environment variable", name)
		}
	}

	return nil
}
