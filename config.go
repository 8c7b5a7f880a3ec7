package main

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// Environment overrides, read after the YAML file (and any .env file).
const (
	envAPIBase  = "WEALTHLENS_API_BASE"
	envLogLevel = "WEALTHLENS_LOG_LEVEL"
)

// EngineConfig describes how to reach the remote calculation service
type EngineConfig struct {
	APIBase        string  `yaml:"api_base" json:"api_base"`
	TimeoutSeconds float64 `yaml:"timeout_seconds" json:"timeout_seconds"`         // 0 = no client-side timeout
	RequestsPerSec float64 `yaml:"requests_per_second" json:"requests_per_second"` // 0 = unlimited
	Burst          int     `yaml:"burst" json:"burst"`                             // Must allow both comparison calls at once
}

// Timeout returns the HTTP client timeout
func (ec EngineConfig) Timeout() time.Duration {
	if ec.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(ec.TimeoutSeconds * float64(time.Second))
}

// AnimationConfig controls the value animator
type AnimationConfig struct {
	DurationMs    int  `yaml:"duration_ms" json:"duration_ms"`
	FramesPerSec  int  `yaml:"frames_per_second" json:"frames_per_second"`
	LegacyOverlap bool `yaml:"legacy_overlap" json:"legacy_overlap"` // Let overlapping sessions race instead of superseding
}

// Duration returns the animation duration
func (ac AnimationConfig) Duration() time.Duration {
	return time.Duration(ac.DurationMs) * time.Millisecond
}

// FrameInterval returns the time between display refreshes
func (ac AnimationConfig) FrameInterval() time.Duration {
	fps := ac.FramesPerSec
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// DisplayConfig holds presentation settings
type DisplayConfig struct {
	Locale        string `yaml:"locale" json:"locale"`
	CurrencyLabel string `yaml:"currency_label" json:"currency_label"` // Prefix used in reports, e.g. "Rs"
	InvestedColor string `yaml:"invested_color" json:"invested_color"`
	ReturnsColor  string `yaml:"returns_color" json:"returns_color"`
}

// PlanConfig holds default plan inputs, in whole-number percent units
type PlanConfig struct {
	MonthlyAmount         float64 `yaml:"monthly_amount" json:"monthly_amount"`
	Years                 int     `yaml:"years" json:"years"`
	ExpectedReturnPercent float64 `yaml:"expected_return" json:"expected_return"`
	StepUpPercent         float64 `yaml:"step_up_percent" json:"step_up_percent"`
	InflationPercent      float64 `yaml:"inflation_percentage" json:"inflation_percentage"`
	ExpenseRatioPercent   float64 `yaml:"expense_ratio" json:"expense_ratio"`
	ExitLoadPercent       float64 `yaml:"exit_load" json:"exit_load"`
}

// StrategyConfig holds one side of a default comparison
type StrategyConfig struct {
	ExpenseRatioPercent float64 `yaml:"expense_ratio" json:"expense_ratio"`
	ExitLoadPercent     float64 `yaml:"exit_load" json:"exit_load"`
	TaxPercent          float64 `yaml:"tax_percentage" json:"tax_percentage"`
}

// ComparisonConfig holds the default strategies for a comparison
type ComparisonConfig struct {
	StrategyA StrategyConfig `yaml:"strategy_a" json:"strategy_a"`
	StrategyB StrategyConfig `yaml:"strategy_b" json:"strategy_b"`
}

// Config is the top-level configuration
type Config struct {
	Engine     EngineConfig     `yaml:"engine" json:"engine"`
	Animation  AnimationConfig  `yaml:"animation" json:"animation"`
	Display    DisplayConfig    `yaml:"display" json:"display"`
	Plan       PlanConfig       `yaml:"plan" json:"plan"`
	Comparison ComparisonConfig `yaml:"comparison" json:"comparison"`
	LogLevel   string           `yaml:"log_level" json:"log_level"`
}

// PlanParameters converts the configured defaults into request parameters
func (c *Config) PlanParameters() PlanParameters {
	return PlanParameters{
		MonthlyAmount:         c.Plan.MonthlyAmount,
		Years:                 c.Plan.Years,
		ExpectedReturnPercent: c.Plan.ExpectedReturnPercent,
		StepUpPercent:         c.Plan.StepUpPercent,
		InflationPercent:      c.Plan.InflationPercent,
		ExpenseRatioPercent:   c.Plan.ExpenseRatioPercent,
		ExitLoadPercent:       c.Plan.ExitLoadPercent,
	}
}

// Strategies returns the configured comparison sides
func (c *Config) Strategies() (a, b StrategyCosts) {
	return c.Comparison.StrategyA.costs(), c.Comparison.StrategyB.costs()
}

func (s StrategyConfig) costs() StrategyCosts {
	return StrategyCosts{
		ExpenseRatioPercent: s.ExpenseRatioPercent,
		ExitLoadPercent:     s.ExitLoadPercent,
		TaxPercent:          s.TaxPercent,
	}
}

// LoadConfig loads configuration from a YAML file, layered over the embedded
// defaults, then applies environment overrides
func LoadConfig(filename string) (*Config, error) {
	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal([]byte(preprocessPercentages(string(data))), config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	config.applyEnv()
	return config, nil
}

// LoadConfigOrDefault is LoadConfig that falls back to the embedded defaults
// when the file does not exist
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if err == nil {
		return config, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	config, err = LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# WealthLens Configuration
# Percentages are whole numbers: 12 means 12%. A trailing % is accepted.
# See default-config.yaml for all options.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration from embedded default-config.yaml
func LoadDefaultConfig() (*Config, error) {
	content := preprocessPercentages(defaultConfigYAML)

	var config Config
	err := yaml.Unmarshal([]byte(content), &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEnvFile reads a .env file into the process environment if present.
// Existing variables win.
func LoadEnvFile(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(envAPIBase)); v != "" {
		c.Engine.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// preprocessPercentages strips a trailing % from values like "12%" so they
// load as whole-number percentages (12)
func preprocessPercentages(content string) string {
	re := regexp.MustCompile(`(:\s*)(-?\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num, 'f', -1, 64)
			}
		}
		return match
	})
}
