package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type AppConfig struct {
	LogLevel     string `validate:"oneof=debug info warn warning error"`
	ConsoleStyle string
	TimeZone     string
}

type RunConfig struct {
	DataDir         string `validate:"required"`
	LexiconDir      string `validate:"required"`
	ExtendedLexicon bool
	TickersFile     string
	Tickers         []Ticker `validate:"dive"`
	TopN            int      `validate:"min=0"`
	Amount          decimal.Decimal
	Currency        string `validate:"required,len=3,uppercase"`
	Output          string `validate:"required"`
}

type TokenizerConfig struct {
	Mode             string `validate:"oneof=words fields"`
	ExcludeStopwords bool
	StopwordsFile    string
}

type ExtractConfig struct {
	Backends       []string `validate:"min=1,dive,oneof=native pdftotext gemini"`
	TimeoutSeconds int      `validate:"min=0"`
	PdftotextPath  string
	MaxChars       int `validate:"min=0"`
	GeminiAPIKey   string
	GeminiModel    string
}

type EmailConfig struct {
	SMTPServer string
	SMTPPort   int    `validate:"min=0,max=65535"`
	SMTPUser   string
	SMTPPass   string
	FromEmail  string `validate:"omitempty,email"`
	ToEmail    string `validate:"omitempty,email"`
}

type FetchConfig struct {
	BaseURL            string `validate:"required,url"`
	Months             int    `validate:"min=1,max=24"`
	PriceSensitiveOnly bool
	TimeoutSeconds     int `validate:"min=1"`
}

type Config struct {
	App       AppConfig
	Run       RunConfig
	Tokenizer TokenizerConfig
	Extract   ExtractConfig
	Email     EmailConfig
	Fetch     FetchConfig
}

// Load reads .env when present, then the environment, then the ticker file
// named by LMS_TICKERS_FILE.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			LogLevel:     strings.ToLower(getEnv("LMS_LOG_LEVEL", "info")),
			ConsoleStyle: getEnv("LMS_CONSOLE_STYLE", "auto"),
			TimeZone:     getEnv("LMS_TIMEZONE", "UTC"),
		},
		Run: RunConfig{
			DataDir:         getEnv("LMS_DATA_DIR", "data"),
			LexiconDir:      getEnv("LMS_LEXICON_DIR", "data/loughran_mcdonald"),
			ExtendedLexicon: getEnvBool("LMS_EXTENDED_LEXICON", false),
			TickersFile:     getEnv("LMS_TICKERS_FILE", ""),
			TopN:            getEnvInt("LMS_TOP_N", 5),
			Amount:          getEnvDecimal("LMS_AMOUNT", decimal.NewFromInt(200000)),
			Currency:        strings.ToUpper(getEnv("LMS_CURRENCY", "USD")),
			Output:          getEnv("LMS_OUTPUT", "portfolio.csv"),
		},
		Tokenizer: TokenizerConfig{
			Mode:             strings.ToLower(getEnv("LMS_TOKENIZER_MODE", "words")),
			ExcludeStopwords: getEnvBool("LMS_EXCLUDE_STOPWORDS", false),
			StopwordsFile:    getEnv("LMS_STOPWORDS_FILE", ""),
		},
		Extract: ExtractConfig{
			Backends:       getEnvList("LMS_EXTRACTORS", []string{"native", "pdftotext"}),
			TimeoutSeconds: getEnvInt("LMS_EXTRACT_TIMEOUT_SECONDS", 60),
			PdftotextPath:  getEnv("LMS_PDFTOTEXT_PATH", "pdftotext"),
			MaxChars:       getEnvInt("LMS_EXTRACT_MAX_CHARS", 0),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("LMS_GEMINI_MODEL", ""),
		},
		Email: EmailConfig{
			SMTPServer: getEnv("LMS_SMTP_SERVER", "smtp.gmail.com"),
			SMTPPort:   getEnvInt("LMS_SMTP_PORT", 587),
			SMTPUser:   getEnv("LMS_SMTP_USER", ""),
			SMTPPass:   getEnv("LMS_SMTP_PASS", ""),
			FromEmail:  getEnv("LMS_FROM_EMAIL", ""),
			ToEmail:    getEnv("LMS_TO_EMAIL", ""),
		},
		Fetch: FetchConfig{
			BaseURL:            getEnv("LMS_ASX_BASE_URL", "https://www.asx.com.au"),
			Months:             getEnvInt("LMS_FETCH_MONTHS", 6),
			PriceSensitiveOnly: getEnvBool("LMS_FETCH_PRICE_SENSITIVE", false),
			TimeoutSeconds:     getEnvInt("LMS_FETCH_TIMEOUT_SECONDS", 60),
		},
	}

	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUser
	}

	if cfg.Run.TickersFile != "" {
		if err := cfg.LoadTickers(cfg.Run.TickersFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Validate checks struct tags and the rules that span several fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !c.Run.Amount.IsPositive() {
		return fmt.Errorf("%w: LMS_AMOUNT must be positive, got %s", ErrInvalid, c.Run.Amount)
	}
	for _, b := range c.Extract.Backends {
		if b == "gemini" && c.Extract.GeminiAPIKey == "" {
			return fmt.Errorf("%w: the gemini extractor needs GEMINI_API_KEY", ErrInvalid)
		}
	}
	seen := make(map[string]bool, len(c.Run.Tickers))
	for _, t := range c.Run.Tickers {
		if seen[t.Symbol] {
			return fmt.Errorf("%w: ticker %s is listed twice", ErrInvalid, t.Symbol)
		}
		seen[t.Symbol] = true
	}
	return nil
}

// EmailEnabled reports whether enough SMTP settings are present to send the report.
func (c *Config) EmailEnabled() bool {
	e := c.Email
	return e.SMTPServer != "" && e.SMTPUser != "" && e.SMTPPass != "" && e.ToEmail != ""
}

func (c *Config) ExtractTimeout() time.Duration {
	return time.Duration(c.Extract.TimeoutSeconds) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// Ticker is one entry of the ticker file.
type Ticker struct {
	Symbol string `yaml:"ticker" validate:"required"`
	Name   string `yaml:"name"`
}

type tickerFile struct {
	Tickers []Ticker `yaml:"tickers"`
}

// LoadTickers replaces the ticker list with the YAML file at path. The file
// order is the ranking tie-break order.
func (c *Config) LoadTickers(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tickers file %s: %w", path, err)
	}
	var f tickerFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return fmt.Errorf("failed to parse tickers file %s: %w", path, err)
	}
	for i := range f.Tickers {
		f.Tickers[i].Symbol = strings.ToUpper(strings.TrimSpace(f.Tickers[i].Symbol))
		f.Tickers[i].Name = strings.TrimSpace(f.Tickers[i].Name)
	}
	c.Run.TickersFile = path
	c.Run.Tickers = f.Tickers
	return nil
}

// Names maps each listed ticker to its display name.
func (c *Config) Names() map[string]string {
	names := make(map[string]string, len(c.Run.Tickers))
	for _, t := range c.Run.Tickers {
		if t.Name != "" {
			names[t.Symbol] = t.Name
		}
	}
	return names
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
