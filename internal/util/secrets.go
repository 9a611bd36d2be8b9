package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
)

type Secrets struct {
	Provider          string        `json:"provider" yaml:"provider"`
	Alpaca            AlpacaSecrets `json:"alpaca" yaml:"alpaca"`
	Db                *DbSecrets    `json:"db" yaml:"db"`
	SES               *SESSecrets   `json:"ses" yaml:"ses"`
	FetchConcurrency  int           `json:"fetchConcurrency" yaml:"fetchConcurrency"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey" yaml:"apiKey"`
	ApiSecret string `json:"apiSecret" yaml:"apiSecret"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
}

// SESSecrets configures emailed reports from the watch command
type SESSecrets struct {
	Region     string   `json:"region" yaml:"region"`
	FromEmail  string   `json:"fromEmail" yaml:"fromEmail"`
	Recipients []string `json:"recipients" yaml:"recipients"`
}

type DbSecrets struct {
	Host      string `json:"host" yaml:"host"`
	User      string `json:"user" yaml:"user"`
	Port      string `json:"port" yaml:"port"`
	Password  string `json:"password" yaml:"password"`
	Database  string `json:"database" yaml:"database"`
	EnableSsl bool   `json:"enableSsl" yaml:"enableSsl"`

	// takes precedence over the fields above when set
	Url string `json:"url" yaml:"url"`
}

func (t DbSecrets) ToConnectionStr() string {
	if t.Url != "" {
		return t.Url
	}
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func defaultSecrets() Secrets {
	return Secrets{
		Provider:          ProviderYahoo,
		FetchConcurrency:  4,
		RequestsPerSecond: 5,
	}
}

func secretsFile() string {
	if path := os.Getenv("MEANREVERT_SECRETS"); path != "" {
		return path
	}
	switch os.Getenv("MEANREVERT_ENV") {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "secrets.json"
}

// LoadSecrets reads the secrets file for the current environment, json
// or yaml by extension, then applies env overrides. a missing file is
// not an error, everything has a usable default
func LoadSecrets() (*Secrets, error) {
	return LoadSecretsFrom(secretsFile())
}

func LoadSecretsFrom(path string) (*Secrets, error) {
	secrets := defaultSecrets()

	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if len(f) > 0 {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(f, &secrets)
		default:
			err = json.Unmarshal(f, &secrets)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		secrets.Alpaca.ApiKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		secrets.Alpaca.ApiSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		if secrets.Db == nil {
			secrets.Db = &DbSecrets{}
		}
		secrets.Db.Url = v
	}

	if err := secrets.validate(); err != nil {
		return nil, err
	}

	return &secrets, nil
}

func (s *Secrets) validate() error {
	if s.Provider == "" {
		s.Provider = ProviderYahoo
	}
	switch s.Provider {
	case ProviderYahoo:
	case ProviderAlpaca:
		if s.Alpaca.ApiKey == "" || s.Alpaca.ApiSecret == "" {
			return fmt.Errorf("alpaca provider requires apiKey and apiSecret")
		}
	default:
		return fmt.Errorf("unknown price provider %q", s.Provider)
	}
	if s.SES != nil && (s.SES.Region == "" || s.SES.FromEmail == "") {
		return fmt.Errorf("ses requires region and fromEmail")
	}
	if s.FetchConcurrency <= 0 {
		s.FetchConcurrency = 1
	}
	if s.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive, got %f", s.RequestsPerSecond)
	}
	return nil
}
