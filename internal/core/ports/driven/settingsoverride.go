package driven

import "github.com/jmachaddo/egg-back-home-wms/internal/core/domain"

// SettingsOverride adjusts settings after they are read from the config store,
// for example from environment variables. Overrides are never persisted.
type SettingsOverride interface {
	Apply(settings *domain.AppSettings) error
}
