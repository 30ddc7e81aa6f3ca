// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/loan-underwriter/internal/underwriting"
	"github.com/iwvelando/loan-underwriter/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-underwriter. The engine
// receives catalog and policy values through this structure rather than
// ambient globals, so tests can run with alternate catalogs or ratios.
type Configuration struct {
	Catalog []CategoryConfig `yaml:"catalog,omitempty"`
	Policy  PolicyConfig     `yaml:"policy,omitempty"`
	Storage StorageConfig    `yaml:"storage,omitempty"`
	Logging LoggingConfig    `yaml:"logging,omitempty"`
	Server  ServerConfig     `yaml:"server,omitempty"`
}

// CategoryConfig describes one loan category offering.
type CategoryConfig struct {
	Name    string  `yaml:"name"`
	Rate    float64 `yaml:"rate"`    // annual interest rate, percent
	MaxTerm int     `yaml:"maxTerm"` // years
}

// PolicyConfig holds the affordability policy parameters.
type PolicyConfig struct {
	DebtRatioLimit float64 `yaml:"debtRatioLimit,omitempty"`
}

// StorageConfig holds the persisted record store parameters.
type StorageConfig struct {
	RecordsFile string `yaml:"recordsFile,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// ServerConfig holds the web front end parameters.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// DefaultConfiguration returns the configuration matching the standard
// loan offerings and policy.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{}
	conf.applyDefaults()
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfiguration(), nil
		}
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if len(c.Catalog) == 0 {
		c.Catalog = []CategoryConfig{
			{Name: "Housing Loan", Rate: 5.2, MaxTerm: 25},
			{Name: "Auto Loan", Rate: 7.5, MaxTerm: 6},
			{Name: "Personal Loan", Rate: 9.6, MaxTerm: 10},
		}
	}
	if c.Policy.DebtRatioLimit == 0 {
		c.Policy.DebtRatioLimit = constants.DefaultDebtRatioLimit
	}
	if c.Storage.RecordsFile == "" {
		c.Storage.RecordsFile = constants.DefaultRecordsFile
	}
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
}

// BuildCatalog constructs the validated catalog from the configured
// categories.
func (c *Configuration) BuildCatalog() (*underwriting.Catalog, error) {
	categories := make([]underwriting.Category, 0, len(c.Catalog))
	for _, entry := range c.Catalog {
		categories = append(categories, underwriting.Category{
			Name:         entry.Name,
			AnnualRate:   entry.Rate,
			MaxTermYears: entry.MaxTerm,
		})
	}
	return underwriting.NewCatalog(categories)
}

// BuildPolicy constructs the affordability policy from configuration.
func (c *Configuration) BuildPolicy() underwriting.Policy {
	return underwriting.Policy{DebtRatioLimit: c.Policy.DebtRatioLimit}
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Policy.DebtRatioLimit < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"debt ratio limit %.2f is negative; no loan can be approved", c.Policy.DebtRatioLimit))
	}
	if c.Policy.DebtRatioLimit > 1 {
		warnings = append(warnings, fmt.Sprintf(
			"debt ratio limit %.2f allows payments above monthly income", c.Policy.DebtRatioLimit))
	}

	for _, entry := range c.Catalog {
		if entry.Rate == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"loan category '%s' has a zero interest rate", entry.Name))
		}
	}

	return warnings
}
