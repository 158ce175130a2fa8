package config

// ServerConfig contains the webhook server configuration
type ServerConfig struct {
	Port          int    `yaml:"port" validate:"gt=0"`
	DefaultPerson string `yaml:"defaultPerson"`
}

// DatasetConfig describes where the static schedule tables live and how
// they are refreshed
type DatasetConfig struct {
	Path              string `yaml:"path" validate:"required"`
	ArchiveURL        string `yaml:"archiveURL" validate:"omitempty,url"`
	RefreshIntervalMS int    `yaml:"refreshIntervalMS" validate:"gte=0"`
}

// ODPTConfig contains the live timetable API configuration
type ODPTConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
	Operator  string `yaml:"operator" validate:"required"`
	Railway   string `yaml:"railway" validate:"required"`
	Direction string `yaml:"direction" validate:"required"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// StationsConfig names the origin (checkpoint C) and destination stations
// in the dataset's local language
type StationsConfig struct {
	Origin      string `yaml:"origin" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`
}

// LINEConfig contains the push notification endpoint configuration
type LINEConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TrackingConfig contains the checkpoint tracker configuration.
// The windows are the maximum allowed A→B and B→C transit times.
type TrackingConfig struct {
	DBPath         string `yaml:"dbPath"`
	MaxAToBMinutes int    `yaml:"maxAToBMinutes" validate:"gte=0"`
	MaxBToCMinutes int    `yaml:"maxBToCMinutes" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Dataset  DatasetConfig  `yaml:"dataset" validate:"required"`
	ODPT     ODPTConfig     `yaml:"odpt" validate:"required"`
	Stations StationsConfig `yaml:"stations" validate:"required"`
	LINE     LINEConfig     `yaml:"line"`
	Tracking TrackingConfig `yaml:"tracking"`
}

// Secrets holds credentials sourced from the environment, never from
// config.yml.
type Secrets struct {
	ODPTToken  string
	LINEToken  string
	LINEUserID string
}
