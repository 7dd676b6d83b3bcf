package cmd

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/spigell/careercompass/assets"
	"github.com/spigell/careercompass/internal/analysis"
	"github.com/spigell/careercompass/internal/keywords"
	"github.com/spigell/careercompass/internal/matching"
	"github.com/spigell/careercompass/internal/recommend"
)

type Config struct {
	// Catalog is a project catalog file. Empty selects the built-in catalog.
	Catalog   string          `mapstructure:"catalog"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Skills    SkillsConfig    `mapstructure:"skills"`
	Report    ReportConfig    `mapstructure:"report"`
}

type MatchingConfig struct {
	CosineWeight float64 `mapstructure:"cosine-weight"`
}

type RecommendConfig struct {
	MaxSuggestions int `mapstructure:"max-suggestions"`
}

// SkillsConfig extends the built-in skills dictionary.
type SkillsConfig struct {
	Extra   []string          `mapstructure:"extra"`
	Aliases map[string]string `mapstructure:"aliases"`
}

type ReportConfig struct {
	TargetPercent float64 `mapstructure:"target-percent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog", "")
	v.SetDefault("matching.cosine-weight", matching.DefaultCosineWeight)
	v.SetDefault("recommend.max-suggestions", 0)
	v.SetDefault("report.target-percent", analysis.DefaultTargetPercent)
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the analysis cannot run with.
func (c *Config) Validate() error {
	w := c.Matching.CosineWeight
	if math.IsNaN(w) || w < 0 || w > 1 {
		return fmt.Errorf("matching.cosine-weight must be within [0,1], got %v", w)
	}
	if c.Recommend.MaxSuggestions < 0 {
		return fmt.Errorf("recommend.max-suggestions must not be negative, got %d", c.Recommend.MaxSuggestions)
	}
	if t := c.Report.TargetPercent; math.IsNaN(t) || t < 0 || t > 100 {
		return fmt.Errorf("report.target-percent must be within [0,100], got %v", t)
	}
	for alias, canonical := range c.Skills.Aliases {
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(canonical) == "" {
			return fmt.Errorf("skills.aliases: empty alias or target in %q: %q", alias, canonical)
		}
	}
	return nil
}

// Dictionary returns the built-in skills dictionary extended by the config.
func (c *Config) Dictionary() *keywords.Dictionary {
	dict := keywords.DefaultDictionary()
	if len(c.Skills.Extra) == 0 && len(c.Skills.Aliases) == 0 {
		return dict
	}
	return dict.With(c.Skills.Extra, c.Skills.Aliases)
}

// CatalogSource names the catalog for logs.
func (c *Config) CatalogSource() string {
	if strings.TrimSpace(c.Catalog) == "" {
		return "built-in"
	}
	return c.Catalog
}

// LoadCatalog reads the configured catalog, or the built-in one.
func (c *Config) LoadCatalog(dict *keywords.Dictionary) (*recommend.Catalog, error) {
	if path := strings.TrimSpace(c.Catalog); path != "" {
		return recommend.LoadCatalog(path, dict)
	}

	catalog, err := recommend.ReadCatalog(bytes.NewReader(assets.ProjectIdeas), "yaml", dict)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return catalog, nil
}
