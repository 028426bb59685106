package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

const (
	configFileName = "rota_config.yaml"

	// envPrefix scopes the optimisation overrides, e.g. ROTA_SEED
	envPrefix = "ROTA_"

	defaultMaxIterations = 100
)

// DateRange is the inclusive range of dates to staff
type DateRange struct {
	Start string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" validate:"required,datetime=2006-01-02"`
}

// StaffMember is a roster entry. Active defaults to true when omitted.
type StaffMember struct {
	ID              string `yaml:"id" validate:"required"`
	Name            string `yaml:"name"`
	Role            string `yaml:"role" validate:"required,oneof=CN RN NA"`
	MaxWeeklyHours  int    `yaml:"maxWeeklyHours,omitempty" validate:"min=0"`
	ExperienceLevel string `yaml:"experienceLevel" validate:"required,oneof=NEWBIE JUNIOR SENIOR EXPERT"`
	Active          *bool  `yaml:"active,omitempty"`
	TeamID          string `yaml:"teamId,omitempty"`
}

// ShiftDefinition overrides a catalogue entry
type ShiftDefinition struct {
	Type      string `yaml:"type" validate:"required,oneof=D E N"`
	StartHour int    `yaml:"startHour" validate:"min=0,max=23"`
	Duration  int    `yaml:"duration" validate:"min=1,max=24"`
}

// HardConstraints mirrors model.HardConstraints with YAML-friendly keys
type HardConstraints struct {
	MinStaffPerShift     map[string]int            `yaml:"minStaffPerShift,omitempty" validate:"dive,keys,oneof=D E N,endkeys,min=0"`
	RoleMixRequirements  map[string]map[string]int `yaml:"roleMixRequirements,omitempty" validate:"dive,keys,oneof=D E N,endkeys,dive,keys,oneof=CN RN NA,endkeys,min=0"`
	MaxConsecutiveNights int                       `yaml:"maxConsecutiveNights" validate:"min=0"`
	MinRestHours         int                       `yaml:"minRestHours" validate:"min=0"`
	NoPatterns           []string                  `yaml:"noPatterns,omitempty"`
	MaxWeeklyHours       int                       `yaml:"maxWeeklyHours" validate:"min=0"`
}

// SoftConstraints holds the objective weights. Any weight left out defaults to 1; an explicit 0 disables the objective.
type SoftConstraints struct {
	PreferenceWeight          *float64 `yaml:"preferenceWeight" validate:"omitempty,min=0"`
	WeekendFairnessWeight     *float64 `yaml:"weekendFairnessWeight" validate:"omitempty,min=0"`
	SplitShiftAvoidanceWeight *float64 `yaml:"splitShiftAvoidanceWeight" validate:"omitempty,min=0"`
	TeamCompatibilityWeight   *float64 `yaml:"teamCompatibilityWeight" validate:"omitempty,min=0"`
	ExperienceBalanceWeight   *float64 `yaml:"experienceBalanceWeight" validate:"omitempty,min=0"`
}

// Preference is a staff member's desire to work (positive) or avoid (negative) a shift
type Preference struct {
	StaffID   string `yaml:"staffId" validate:"required"`
	Date      string `yaml:"date" validate:"required,datetime=2006-01-02"`
	ShiftType string `yaml:"shiftType" validate:"required,oneof=D E N"`
	Score     int    `yaml:"score" validate:"min=-5,max=5"`
}

// StaffingOverride replaces the per-shift minimums on every date matching RRule
type StaffingOverride struct {
	RRule            string         `yaml:"rrule" validate:"required"`
	MinStaffPerShift map[string]int `yaml:"minStaffPerShift" validate:"required,min=1,dive,keys,oneof=D E N,endkeys,min=0"`
}

// Optimization controls the swap search. Fields can be overridden from the environment.
type Optimization struct {
	Enabled       bool  `yaml:"enabled" env:"OPTIMIZE"`
	MaxIterations int   `yaml:"maxIterations" env:"MAX_ITERATIONS" validate:"min=0"`
	Seed          int64 `yaml:"seed" env:"SEED"`
}

// Config represents one roster scenario
type Config struct {
	DateRange         DateRange          `yaml:"dateRange"`
	Staff             []StaffMember      `yaml:"staff" validate:"required,min=1,dive"`
	Shifts            []ShiftDefinition  `yaml:"shifts,omitempty" validate:"dive"`
	HardConstraints   HardConstraints    `yaml:"hardConstraints"`
	SoftConstraints   *SoftConstraints   `yaml:"softConstraints,omitempty"`
	Preferences       []Preference       `yaml:"preferences,omitempty" validate:"dive"`
	StaffingOverrides []StaffingOverride `yaml:"staffingOverrides,omitempty" validate:"dive"`
	Optimization      Optimization       `yaml:"optimization"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads, overrides from the environment, defaults and validates the configuration
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg.Optimization, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills optional fields. It is applied once at load time.
func ApplyDefaults(cfg *Config) {
	for i := range cfg.Staff {
		if cfg.Staff[i].Active == nil {
			active := true
			cfg.Staff[i].Active = &active
		}
	}

	if cfg.SoftConstraints == nil {
		cfg.SoftConstraints = &SoftConstraints{}
	}
	defaults := model.DefaultSoftConstraints()
	soft := cfg.SoftConstraints
	defaultWeight(&soft.PreferenceWeight, defaults.PreferenceWeight)
	defaultWeight(&soft.WeekendFairnessWeight, defaults.WeekendFairnessWeight)
	defaultWeight(&soft.SplitShiftAvoidanceWeight, defaults.SplitShiftAvoidanceWeight)
	defaultWeight(&soft.TeamCompatibilityWeight, defaults.TeamCompatibilityWeight)
	defaultWeight(&soft.ExperienceBalanceWeight, defaults.ExperienceBalanceWeight)

	if cfg.Optimization.Enabled && cfg.Optimization.MaxIterations == 0 {
		cfg.Optimization.MaxIterations = defaultMaxIterations
	}
}

func defaultWeight(w **float64, fallback float64) {
	if *w == nil {
		*w = &fallback
	}
}

// Validate validates the configuration struct and checks dates, patterns and rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.DateRange.toModel().Dates(); err != nil {
		return fmt.Errorf("invalid dateRange: %w", err)
	}

	// Staff IDs must be unique so assignments resolve to one member
	seen := make(map[string]bool, len(cfg.Staff))
	for i, s := range cfg.Staff {
		if seen[s.ID] {
			return fmt.Errorf("duplicate staff id %q at staff[%d]", s.ID, i)
		}
		seen[s.ID] = true
	}

	for i, pattern := range cfg.HardConstraints.NoPatterns {
		if err := validatePattern(pattern); err != nil {
			return fmt.Errorf("invalid pattern in noPatterns[%d]: %w", i, err)
		}
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.StaffingOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in staffingOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// validatePattern checks a transition of the form "<prev>-><cur>" between two working shift codes
func validatePattern(pattern string) error {
	prev, cur, ok := strings.Cut(pattern, "->")
	if !ok {
		return fmt.Errorf("%q is not of the form X->Y", pattern)
	}
	for _, code := range []string{prev, cur} {
		if !model.ShiftType(code).IsWorking() {
			return fmt.Errorf("%q has unknown shift code %q", pattern, code)
		}
	}
	return nil
}

// StaffingMinimums expands the staffing overrides into per-date minimums over the date range.
// When several overrides match a date, later overrides win per shift type.
func (c *Config) StaffingMinimums() (map[string]map[model.ShiftType]int, error) {
	minimums := make(map[string]map[model.ShiftType]int)
	if len(c.StaffingOverrides) == 0 {
		return minimums, nil
	}

	start, err := model.ParseDate(c.DateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dateRange start: %w", err)
	}
	end, err := model.ParseDate(c.DateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dateRange end: %w", err)
	}

	for i, override := range c.StaffingOverrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}

		rule.DTStart(start)
		for _, occurrence := range rule.Between(start, end.Add(24*time.Hour-time.Second), true) {
			date := occurrence.Format(model.DateLayout)
			if minimums[date] == nil {
				minimums[date] = make(map[model.ShiftType]int)
			}
			for shiftType, n := range override.MinStaffPerShift {
				minimums[date][model.ShiftType(shiftType)] = n
			}
		}
	}

	return minimums, nil
}

// ToModel converts the scenario into the core model types
func (c *Config) ToModel() (Scenario, error) {
	minimums, err := c.StaffingMinimums()
	if err != nil {
		return Scenario{}, err
	}

	staff := make([]model.Staff, 0, len(c.Staff))
	for _, s := range c.Staff {
		staff = append(staff, model.Staff{
			ID:              s.ID,
			Name:            s.Name,
			Role:            model.Role(s.Role),
			MaxWeeklyHours:  s.MaxWeeklyHours,
			ExperienceLevel: model.ExperienceLevel(s.ExperienceLevel),
			Active:          s.Active == nil || *s.Active,
			TeamID:          s.TeamID,
		})
	}

	catalogue := model.DefaultShiftCatalogue()
	for _, def := range c.Shifts {
		shiftType := model.ShiftType(def.Type)
		entry := catalogue[shiftType]
		entry.Type = shiftType
		entry.StartHour = def.StartHour
		entry.Duration = def.Duration
		catalogue[shiftType] = entry
	}

	hard := model.HardConstraints{
		MinStaffPerShift:     make(map[model.ShiftType]int, len(c.HardConstraints.MinStaffPerShift)),
		RoleMixRequirements:  make(map[model.ShiftType]map[model.Role]int, len(c.HardConstraints.RoleMixRequirements)),
		MaxConsecutiveNights: c.HardConstraints.MaxConsecutiveNights,
		MinRestHours:         c.HardConstraints.MinRestHours,
		NoPatterns:           c.HardConstraints.NoPatterns,
		MaxWeeklyHours:       c.HardConstraints.MaxWeeklyHours,
		DateMinimums:         minimums,
	}
	for shiftType, n := range c.HardConstraints.MinStaffPerShift {
		hard.MinStaffPerShift[model.ShiftType(shiftType)] = n
	}
	for shiftType, roles := range c.HardConstraints.RoleMixRequirements {
		mix := make(map[model.Role]int, len(roles))
		for role, n := range roles {
			mix[model.Role(role)] = n
		}
		hard.RoleMixRequirements[model.ShiftType(shiftType)] = mix
	}

	soft := model.DefaultSoftConstraints()
	if sc := c.SoftConstraints; sc != nil {
		soft = model.SoftConstraints{
			PreferenceWeight:          weightOr(sc.PreferenceWeight, soft.PreferenceWeight),
			WeekendFairnessWeight:     weightOr(sc.WeekendFairnessWeight, soft.WeekendFairnessWeight),
			SplitShiftAvoidanceWeight: weightOr(sc.SplitShiftAvoidanceWeight, soft.SplitShiftAvoidanceWeight),
			TeamCompatibilityWeight:   weightOr(sc.TeamCompatibilityWeight, soft.TeamCompatibilityWeight),
			ExperienceBalanceWeight:   weightOr(sc.ExperienceBalanceWeight, soft.ExperienceBalanceWeight),
		}
	}

	preferences := make([]model.Preference, 0, len(c.Preferences))
	for _, p := range c.Preferences {
		preferences = append(preferences, model.Preference{
			StaffID:   p.StaffID,
			Date:      p.Date,
			ShiftType: model.ShiftType(p.ShiftType),
			Score:     p.Score,
		})
	}

	return Scenario{
		DateRange:    c.DateRange.toModel(),
		Staff:        staff,
		Shifts:       catalogue,
		Hard:         hard,
		Soft:         soft,
		Preferences:  preferences,
		Optimization: c.Optimization,
	}, nil
}

// Scenario is a validated configuration expressed in core model types
type Scenario struct {
	DateRange    model.DateRange
	Staff        []model.Staff
	Shifts       model.ShiftCatalogue
	Hard         model.HardConstraints
	Soft         model.SoftConstraints
	Preferences  []model.Preference
	Optimization Optimization
}

func (d DateRange) toModel() model.DateRange {
	return model.DateRange{Start: d.Start, End: d.End}
}

// findConfigFile searches for rota_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

func weightOr(w *float64, fallback float64) float64 {
	if w == nil {
		return fallback
	}
	return *w
}
