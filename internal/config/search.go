package config

import "os"

// Environment variables holding the optional search-service credentials.
const (
	EnvSearchAppID  = "DOCSITE_SEARCH_APP_ID"
	EnvSearchAPIKey = "DOCSITE_SEARCH_API_KEY"
	EnvSearchIndex  = "DOCSITE_SEARCH_INDEX"
)

// SearchConfig carries third-party search credentials. They are read from
// the environment only and never serialised.
type SearchConfig struct {
	AppID  string
	APIKey string
	Index  string
}

// SearchStatus describes how complete the search credentials are.
type SearchStatus int

const (
	SearchDisabled SearchStatus = iota
	SearchPartial
	SearchEnabled
)

// SearchFromEnv reads the search credentials from the environment.
func SearchFromEnv() SearchConfig {
	return SearchConfig{
		AppID:  os.Getenv(EnvSearchAppID),
		APIKey: os.Getenv(EnvSearchAPIKey),
		Index:  os.Getenv(EnvSearchIndex),
	}
}

// Status reports whether search is enabled. Absent credentials disable
// search; a partial set is reported so it can be surfaced as a warning.
func (s SearchConfig) Status() SearchStatus {
	set := 0
	for _, v := range []string{s.AppID, s.APIKey, s.Index} {
		if v != "" {
			set++
		}
	}
	switch set {
	case 0:
		return SearchDisabled
	case 3:
		return SearchEnabled
	default:
		return SearchPartial
	}
}

// Missing lists the unset variable names.
func (s SearchConfig) Missing() []string {
	var missing []string
	if s.AppID == "" {
		missing = append(missing, EnvSearchAppID)
	}
	if s.APIKey == "" {
		missing = append(missing, EnvSearchAPIKey)
	}
	if s.Index == "" {
		missing = append(missing, EnvSearchIndex)
	}
	return missing
}
