// Package config loads application settings from a .env file and
// environment variables. Environment variables always take precedence over
// .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Home and vehicle.
	HomePostcode string
	MPG          float64

	// Dog and handler.
	DogName           string
	DogDOB            time.Time
	HandlerHasCC      bool
	DogHasWorkingQual bool
	DogHasGoodCitizen bool

	// Class lists and award trigger words.
	ClassExclusions []string
	AlwaysInclude   []string
	CCTriggerWords  []string
	RCCTriggerWords []string

	// Targeted breed section heading in schedules.
	Breed string

	// Overnight stay model.
	OvernightThreshold time.Duration
	OvernightCost      float64

	// Overnight-chain detection thresholds.
	ChainHomeThreshold time.Duration
	ChainMaxLeg        time.Duration
	ChainMaxLength     int

	// External services.
	MapsAPIKey string

	// Paths.
	DataDir      string
	OutputDir    string
	SchedulesDir string
	WinLogFile   string

	Debug bool
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win. Returns an
// error for malformed correctness-critical values (the date of birth)
// rather than silently substituting a default.
func Load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("HOME_POSTCODE", "YO8 9NA")
	v.SetDefault("MPG", 40.0)
	v.SetDefault("DOG_NAME", "Delia")
	v.SetDefault("DOG_DOB", "2024-05-15")
	v.SetDefault("BREED", "Retriever (Golden)")
	v.SetDefault("OVERNIGHT_THRESHOLD_HOURS", 3.0)
	v.SetDefault("OVERNIGHT_COST", 100.0)
	v.SetDefault("CHAIN_HOME_THRESHOLD_MINUTES", 180)
	v.SetDefault("CHAIN_MAX_LEG_MINUTES", 75)
	v.SetDefault("CHAIN_MAX_LENGTH", 0)
	v.SetDefault("CC_TRIGGER_WORDS", "cc,challenge certificate")
	v.SetDefault("RCC_TRIGGER_WORDS", "rcc,reserve cc,reserve challenge certificate")
	v.SetDefault("DATA_DIR", "~/.local/share/fossedata")
	v.SetDefault("OUTPUT_DIR", "output")
	v.SetDefault("SCHEDULES_DIR", "schedules")
	v.SetDefault("WIN_LOG_FILE", "win_log.json")
	v.SetDefault("DEBUG", false)

	dob, err := time.Parse("2006-01-02", v.GetString("DOG_DOB"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid DOG_DOB %q (want YYYY-MM-DD): %w", v.GetString("DOG_DOB"), err)
	}

	cfg := &Config{
		HomePostcode:       v.GetString("HOME_POSTCODE"),
		MPG:                v.GetFloat64("MPG"),
		DogName:            v.GetString("DOG_NAME"),
		DogDOB:             dob,
		HandlerHasCC:       v.GetBool("HANDLER_HAS_CC"),
		DogHasWorkingQual:  v.GetBool("DOG_HAS_WORKING_QUAL"),
		DogHasGoodCitizen:  v.GetBool("DOG_HAS_GOOD_CITIZEN"),
		ClassExclusions:    splitTrimmed(v.GetString("CLASS_EXCLUSIONS")),
		AlwaysInclude:      splitTrimmed(v.GetString("ALWAYS_INCLUDE")),
		CCTriggerWords:     splitTrimmed(v.GetString("CC_TRIGGER_WORDS")),
		RCCTriggerWords:    splitTrimmed(v.GetString("RCC_TRIGGER_WORDS")),
		Breed:              v.GetString("BREED"),
		OvernightThreshold: time.Duration(v.GetFloat64("OVERNIGHT_THRESHOLD_HOURS") * float64(time.Hour)),
		OvernightCost:      v.GetFloat64("OVERNIGHT_COST"),
		ChainHomeThreshold: time.Duration(v.GetInt("CHAIN_HOME_THRESHOLD_MINUTES")) * time.Minute,
		ChainMaxLeg:        time.Duration(v.GetInt("CHAIN_MAX_LEG_MINUTES")) * time.Minute,
		ChainMaxLength:     v.GetInt("CHAIN_MAX_LENGTH"),
		MapsAPIKey:         v.GetString("GOOGLE_MAPS_API_KEY"),
		DataDir:            v.GetString("DATA_DIR"),
		OutputDir:          v.GetString("OUTPUT_DIR"),
		SchedulesDir:       v.GetString("SCHEDULES_DIR"),
		WinLogFile:         v.GetString("WIN_LOG_FILE"),
		Debug:              v.GetBool("DEBUG"),
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	// Silently load .env, OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
