// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Defaults  Defaults
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"` // pretty, csv
	Schedule bool   `yaml:"schedule,omitempty"`
}

// Defaults are applied to every scenario that leaves the field unset.
type Defaults struct {
	StartDate       string
	PaymentsPerYear int
}

// Scenario holds one loan to evaluate. Price and DownPayment are whole-unit
// amounts and may be written grouped, e.g. "300,000".
type Scenario struct {
	Name               string
	Active             bool
	Price              string
	DownPayment        string
	AnnualRatePercent  float64
	TermYears          float64
	PaymentsPerYear    int
	MonthlyPropertyTax float64
	MonthlyInsurance   float64
	SimpleMode         bool
	StartDate          string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("MORTGAGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Requests converts the active scenarios into calculator requests with the
// defaults applied.
func (conf *Configuration) Requests() []calculator.Request {
	var reqs []calculator.Request
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			continue
		}
		req := calculator.Request{
			Name:               scenario.Name,
			Price:              calculator.Amount(scenario.Price),
			DownPayment:        calculator.Amount(scenario.DownPayment),
			AnnualRatePercent:  scenario.AnnualRatePercent,
			TermYears:          scenario.TermYears,
			PaymentsPerYear:    scenario.PaymentsPerYear,
			MonthlyPropertyTax: scenario.MonthlyPropertyTax,
			MonthlyInsurance:   scenario.MonthlyInsurance,
			SimpleMode:         scenario.SimpleMode,
			StartDate:          scenario.StartDate,
		}
		if req.PaymentsPerYear == 0 {
			req.PaymentsPerYear = conf.Defaults.PaymentsPerYear
		}
		if req.StartDate == "" {
			req.StartDate = conf.Defaults.StartDate
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Output.Format != "" {
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	seen := make(map[string]int)
	active := 0
	gate := mortgage.DefaultGate()
	for i, scenario := range conf.Scenarios {
		name := scenario.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Scenario %s has no name", name))
		} else {
			seen[name]++
			if seen[name] == 2 {
				warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", name))
			}
		}

		if !scenario.Active {
			continue
		}
		active++

		startDate := scenario.StartDate
		if startDate == "" {
			startDate = conf.Defaults.StartDate
		}
		if warning, err := validation.ValidateStartDate(name, startDate); err != nil {
			warnings = append(warnings, err.Error())
		} else if warning != "" {
			warnings = append(warnings, warning)
		}

		paymentsPerYear := scenario.PaymentsPerYear
		if paymentsPerYear == 0 {
			paymentsPerYear = conf.Defaults.PaymentsPerYear
		}
		if err := validation.ValidatePaymentsPerYear(name, paymentsPerYear); err != nil {
			warnings = append(warnings, err.Error())
		}

		price := calculator.Amount(scenario.Price).Value()
		down := calculator.Amount(scenario.DownPayment).Value()
		if err := gate.Validate(price, down, scenario.AnnualRatePercent, scenario.TermYears); err != nil {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' will be rejected: %v", name, err))
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be computed")
	}

	return warnings
}
