package llm

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"csvalign/internal/errors"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ProviderInfo describes one completion service for the UI: display name and
// the model ids a user may pick. Pure configuration, no behavior.
type ProviderInfo struct {
	ID          string   `yaml:"id" json:"id"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Models      []string `yaml:"models" json:"models"`
}

// Catalog is the enumerable provider/model configuration shipped with the
// binary.
type Catalog struct {
	Providers []ProviderInfo `yaml:"providers" json:"providers"`
}

// LoadCatalog parses the embedded provider catalog.
func LoadCatalog() (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, errors.Wrap(err, "failed to parse provider catalog")
	}
	if len(catalog.Providers) == 0 {
		return nil, errors.ConfigInvalid("provider catalog is empty")
	}
	return &catalog, nil
}

// DefaultModel returns the first model listed for a provider, or "".
func (c *Catalog) DefaultModel(provider string) string {
	for _, p := range c.Providers {
		if p.ID == provider && len(p.Models) > 0 {
			return p.Models[0]
		}
	}
	return ""
}

// HasProvider reports whether the catalog lists the provider id.
func (c *Catalog) HasProvider(provider string) bool {
	for _, p := range c.Providers {
		if p.ID == provider {
			return true
		}
	}
	return false
}
