package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the analysis service, the banner
// timing, metrics, the development stub and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// Service contains the analysis service connection settings
	Service struct {
		// BaseURL is the root of the analysis service
		BaseURL string `env:"SERVICE_BASE_URL" env-default:"http://localhost:5000" yaml:"baseURL"`
		// RequestTimeout bounds the wait for a single analysis or source call
		RequestTimeout time.Duration `env:"SERVICE_REQUEST_TIMEOUT" env-default:"15s" yaml:"requestTimeout"`
	} `yaml:"service"`

	// Banner contains the in-page notification timing
	Banner struct {
		// DisplayDuration is how long a settled banner stays visible (5s to 7s)
		DisplayDuration time.Duration `env:"BANNER_DISPLAY_DURATION" env-default:"7s" yaml:"displayDuration"`
		// ExitDuration is the length of the exit transition before removal
		ExitDuration time.Duration `env:"BANNER_EXIT_DURATION" env-default:"500ms" yaml:"exitDuration"`
	} `yaml:"banner"`

	// Metrics contains the Prometheus exposition settings
	Metrics struct {
		// Enabled turns on the metrics listener for client commands
		Enabled bool `env:"METRICS_ENABLED" env-default:"false" yaml:"enabled"`
		// Addr is the address the metrics listener binds to
		Addr string `env:"METRICS_ADDR" env-default:":9090" yaml:"addr"`
		// Path defines the URL path where metrics are exposed
		Path string `env:"METRICS_PATH" env-default:"/metrics" yaml:"path"`
	} `yaml:"metrics"`

	// DevService contains the settings of the local analysis stub
	DevService struct {
		// Addr is the address and port the stub will listen on
		Addr string `env:"DEV_SERVICE_ADDR" env-default:":5000" yaml:"addr"`
		// FixturesPath points to a JSON file mapping host names to output objects
		FixturesPath string `env:"DEV_SERVICE_FIXTURES_PATH" env-default:"" yaml:"fixturesPath"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"DEV_SERVICE_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"DEV_SERVICE_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"DEV_SERVICE_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"DEV_SERVICE_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// Latency is an artificial delay added to every analysis response
		Latency time.Duration `env:"DEV_SERVICE_LATENCY" env-default:"0s" yaml:"latency"`
	} `yaml:"devService"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist the configuration comes from the environment
// and defaults alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(configPath)
	switch {
	case configPath == "" || errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from env: %w", err)
		}
	default:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	return &cfg, nil
}
