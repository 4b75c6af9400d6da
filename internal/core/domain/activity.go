package domain

import "time"

// Activity log modules.
const (
	ModuleMasterData   = "MasterData"
	ModuleIntegrations = "Integrations"
	ModuleSettings     = "Settings"
	ModuleUsers        = "Users"
)

// SystemActor is recorded for actions that no user initiated.
const SystemActor = "System"

// LogEntry is one record in the activity log.
type LogEntry struct {
	ID        string
	Action    string
	Module    string
	Details   string
	User      string
	Timestamp time.Time
}

// ModulesFor expands a module filter into the modules it covers.
// Returns nil for an empty filter. The Settings filter also covers the
// Users and Integrations modules, whose screens live under Settings.
func ModulesFor(filter string) []string {
	switch filter {
	case "":
		return nil
	case ModuleSettings:
		return []string{ModuleSettings, ModuleUsers, ModuleIntegrations}
	default:
		return []string{filter}
	}
}

// MatchesModule reports whether the entry belongs to the given module filter.
// An empty filter matches everything.
func (e *LogEntry) MatchesModule(filter string) bool {
	modules := ModulesFor(filter)
	if modules == nil {
		return true
	}
	for _, m := range modules {
		if e.Module == m {
			return true
		}
	}
	return false
}
