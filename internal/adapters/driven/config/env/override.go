package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure Override implements the interface.
var _ driven.SettingsOverride = (*Override)(nil)

// Prefix is prepended to every variable name.
const Prefix = "EGGWMS_"

// DefaultDotEnv is the file read when NewOverride is given none.
const DefaultDotEnv = ".env"

type syncVars struct {
	Interval     time.Duration `env:"INTERVAL"`
	Schedule     string        `env:"SCHEDULE"`
	HistoryLimit int           `env:"HISTORY_LIMIT"`
}

type storageVars struct {
	Backend     string `env:"BACKEND"`
	DataDir     string `env:"DATA_DIR"`
	PostgresURL string `env:"POSTGRES_URL"`
}

type serverVars struct {
	Addr   string `env:"ADDR"`
	APIKey string `env:"API_KEY"`
}

type vars struct {
	Sync    syncVars    `envPrefix:"SYNC_"`
	Storage storageVars `envPrefix:"STORAGE_"`
	Server  serverVars  `envPrefix:"SERVER_"`
}

// Override applies environment variables on top of stored settings.
type Override struct {
	environ map[string]string
}

// NewOverride snapshots the process environment merged over the given
// dotenv files. Missing files are ignored.
func NewOverride(dotenvFiles ...string) (*Override, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{DefaultDotEnv}
	}
	return newOverride(os.Environ(), dotenvFiles...)
}

func newOverride(environ []string, dotenvFiles ...string) (*Override, error) {
	merged := make(map[string]string)
	for _, path := range dotenvFiles {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range values {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			merged[k] = v
		}
	}
	return &Override{environ: merged}, nil
}

// Apply copies every variable that is set into settings.
func (o *Override) Apply(settings *domain.AppSettings) error {
	var v vars
	if err := envparse.ParseWithOptions(&v, envparse.Options{
		Prefix:      Prefix,
		Environment: o.environ,
	}); err != nil {
		return fmt.Errorf("%w: environment: %v", domain.ErrInvalidInput, err)
	}

	if v.Sync.Interval != 0 {
		settings.Sync.Interval = v.Sync.Interval
	}
	if v.Sync.Schedule != "" {
		settings.Sync.Schedule = v.Sync.Schedule
	}
	if v.Sync.HistoryLimit != 0 {
		settings.Sync.HistoryLimit = v.Sync.HistoryLimit
	}
	if v.Storage.Backend != "" {
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(v.Storage.Backend))
	}
	if v.Storage.DataDir != "" {
		settings.Storage.DataDir = v.Storage.DataDir
	}
	if v.Storage.PostgresURL != "" {
		settings.Storage.PostgresURL = v.Storage.PostgresURL
	}
	if v.Server.Addr != "" {
		settings.Server.Addr = v.Server.Addr
	}
	if v.Server.APIKey != "" {
		settings.Server.APIKey = v.Server.APIKey
	}
	return nil
}

// Set reports whether any EGGWMS_ variable is present.
func (o *Override) Set() bool {
	for k := range o.environ {
		if strings.HasPrefix(k, Prefix) {
			return true
		}
	}
	return false
}
