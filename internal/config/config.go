// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-jobhawk-automation/internal/models"
)

// Phrase is a criteria entry: a plain string in YAML, or a list of
// strings that must ALL match for the entry to count ("ignore if the
// title contains both X and Y").
type Phrase []string

func (p *Phrase) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*p = Phrase{s}
		return nil
	case yaml.SequenceNode:
		var parts []string
		if err := value.Decode(&parts); err != nil {
			return err
		}
		*p = Phrase(parts)
		return nil
	default:
		return fmt.Errorf("criteria phrase must be a string or a list of strings")
	}
}

// MatchLists holds the ideal or ignore phrases per listing field
type MatchLists struct {
	Titles       []Phrase `yaml:"titles"`
	Companies    []Phrase `yaml:"companies"`
	Locations    []Phrase `yaml:"locations"`
	Descriptions []Phrase `yaml:"descriptions"`
}

type Salary struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type YearsOfExperience struct {
	Minimum *int `yaml:"minimum"`
	Maximum *int `yaml:"maximum"`
}

type Experience struct {
	Entry  bool `yaml:"entry"`
	Mid    bool `yaml:"mid"`
	Senior bool `yaml:"senior"`
}

type SearchLocation struct {
	City             string `yaml:"city"`
	Remote           bool   `yaml:"remote"`
	Hybrid           bool   `yaml:"hybrid"`
	MaxDistanceMiles int    `yaml:"max_distance_miles"`
}

type SearchTerms struct {
	Match  []string `yaml:"match"`
	Ignore []string `yaml:"ignore"`
}

type Search struct {
	Terms            SearchTerms       `yaml:"terms"`
	Location         SearchLocation    `yaml:"location"`
	Salary           Salary            `yaml:"salary"`
	Experience       Experience        `yaml:"experience"`
	MaxAgeInDays     int               `yaml:"max_age_in_days"`
	MinCompanyRating float64           `yaml:"min_company_rating"`
	Yoe              YearsOfExperience `yaml:"years_of_experience"`
}

// Behavior are the run-wide toggles that shape the scrape loop
type Behavior struct {
	FullScrape         bool            `yaml:"full_scrape"`
	CheckIdeal         bool            `yaml:"check_ideal"`
	CheckIgnore        bool            `yaml:"check_ignore"`
	ExpectedLanguage   models.Language `yaml:"expected_language"`
	FallbackToBrief    bool            `yaml:"fallback_to_brief"`
	AutoApply          bool            `yaml:"auto_apply"`
	PauseEveryJobs     int             `yaml:"pause_every_jobs"`
	MemoryLimitPercent float64         `yaml:"memory_limit_percent"`
	PageLoadTimeoutSec int             `yaml:"page_load_timeout_sec"`
}

// PlatformSettings carry the bits that vary by job board. PageSize is
// the listings-per-page constant the pagination incrementor derives
// indices from; it is reverse-engineered from each board's layout, so it
// lives in config rather than code.
type PlatformSettings struct {
	Enabled       bool `yaml:"enabled"`
	PageSize      int  `yaml:"page_size"`
	EasyApplyOnly bool `yaml:"easy_apply_only"`
}

type Config struct {
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	CookiesPath    string `yaml:"cookies_path"`

	Search   Search     `yaml:"search"`
	Behavior Behavior   `yaml:"behavior"`
	Ideal    MatchLists `yaml:"ideal"`
	Ignore   MatchLists `yaml:"ignore"`

	LinkedIn  PlatformSettings `yaml:"linkedin"`
	Indeed    PlatformSettings `yaml:"indeed"`
	Glassdoor PlatformSettings `yaml:"glassdoor"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	//Override with env vars
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.applyDefaults()

	//Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies"
	}
	if c.Behavior.ExpectedLanguage == "" {
		c.Behavior.ExpectedLanguage = models.LanguageEnglish
	}
	if c.Behavior.PauseEveryJobs == 0 {
		c.Behavior.PauseEveryJobs = 50
	}
	if c.Behavior.MemoryLimitPercent == 0 {
		c.Behavior.MemoryLimitPercent = 90
	}
	if c.Behavior.PageLoadTimeoutSec == 0 {
		c.Behavior.PageLoadTimeoutSec = 30
	}
	if c.Search.MaxAgeInDays == 0 {
		c.Search.MaxAgeInDays = 7
	}
	// a config with no platform enabled means "run everything"
	if !c.LinkedIn.Enabled && !c.Indeed.Enabled && !c.Glassdoor.Enabled {
		c.LinkedIn.Enabled = true
		c.Indeed.Enabled = true
		c.Glassdoor.Enabled = true
	}
	// page sizes observed on each board's current layout; override in
	// YAML when a board reshuffles its result list
	if c.LinkedIn.PageSize == 0 {
		c.LinkedIn.PageSize = 26
	}
	if c.Indeed.PageSize == 0 {
		c.Indeed.PageSize = 20
	}
	if c.Glassdoor.PageSize == 0 {
		c.Glassdoor.PageSize = 30
	}
}
