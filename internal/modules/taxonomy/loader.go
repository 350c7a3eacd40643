package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileFormat matches the on-disk factor config layout: factors grouped by
// domain, event types keyed by code.
type fileFormat struct {
	FactorDomains map[string]struct {
		Name    string `json:"name"`
		Factors map[string]struct {
			Name string `json:"name"`
		} `json:"factors"`
	} `json:"factor_domains"`
	EventTypes map[string]struct {
		Name              string  `json:"name"`
		DefaultImportance float64 `json:"default_importance"`
	} `json:"event_types"`
}

// Loader reads taxonomy files.
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a new taxonomy loader.
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{
		log: log.With().Str("component", "taxonomy_loader").Logger(),
	}
}

// LoadFromFile loads a taxonomy from a JSON factor config file.
func (l *Loader) LoadFromFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	var factors []Factor
	for domainKey, domain := range raw.FactorDomains {
		for code, f := range domain.Factors {
			factors = append(factors, Factor{
				Code:   code,
				Name:   f.Name,
				Domain: domainKey,
			})
		}
	}

	var eventTypes []EventType
	for code, et := range raw.EventTypes {
		eventTypes = append(eventTypes, EventType{
			Code:              code,
			Name:              et.Name,
			DefaultImportance: et.DefaultImportance,
		})
	}

	l.log.Info().
		Str("path", path).
		Int("factors", len(factors)).
		Int("event_types", len(eventTypes)).
		Msg("Taxonomy loaded")

	return New(factors, eventTypes), nil
}

// Load returns the taxonomy at path, or the built-in default when path is
// empty or the file does not exist.
func (l *Loader) Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		l.log.Warn().Str("path", path).Msg("Taxonomy file not found, using built-in defaults")
		return Default(), nil
	}
	return l.LoadFromFile(path)
}
