package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after unmarshalling when the corresponding field is
// left at its zero value.
const (
	defaultPort           = 8300
	defaultODPTEndpoint   = "https://api.odpt.org/api/v4/odpt:StationTimetable"
	defaultLINEEndpoint   = "https://api.line.me/v2/bot/message/push"
	defaultTimeoutMS      = 10000
	defaultDBPath         = "tracking.db"
	defaultPerson         = "誰かさん"
	defaultMaxAToBMinutes = 30
	defaultMaxBToCMinutes = 5
)

// Load reads and validates the application configuration from the given
// yaml file. Secrets are not part of the file; see LoadSecrets.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	v := validator.New()
	if err := v.Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.DefaultPerson == "" {
		cfg.Server.DefaultPerson = defaultPerson
	}
	if cfg.ODPT.Endpoint == "" {
		cfg.ODPT.Endpoint = defaultODPTEndpoint
	}
	if cfg.ODPT.TimeoutMS == 0 {
		cfg.ODPT.TimeoutMS = defaultTimeoutMS
	}
	if cfg.LINE.Endpoint == "" {
		cfg.LINE.Endpoint = defaultLINEEndpoint
	}
	if cfg.LINE.TimeoutMS == 0 {
		cfg.LINE.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Tracking.DBPath == "" {
		cfg.Tracking.DBPath = defaultDBPath
	}
	if cfg.Tracking.MaxAToBMinutes == 0 {
		cfg.Tracking.MaxAToBMinutes = defaultMaxAToBMinutes
	}
	if cfg.Tracking.MaxBToCMinutes == 0 {
		cfg.Tracking.MaxBToCMinutes = defaultMaxBToCMinutes
	}
}

// LoadSecrets reads the credentials from the environment. Each key also
// accepts a KEY_FILE variant pointing at a file holding the value.
func LoadSecrets() (Secrets, error) {
	var s Secrets
	var err error
	if s.ODPTToken, err = fromEnvironment("ODPT_ACCESS_TOKEN"); err != nil {
		return s, err
	}
	if s.LINEToken, err = fromEnvironment("LINE_ACCESS_TOKEN"); err != nil {
		return s, err
	}
	if s.LINEUserID, err = fromEnvironment("LINE_USER_ID"); err != nil {
		return s, err
	}
	return s, nil
}
