package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	UnitSystem   string             `json:"unit_system" yaml:"unit_system" toml:"unit_system"`
	Currency     string             `json:"currency" yaml:"currency" toml:"currency"`
	Locale       string             `json:"locale" yaml:"locale" toml:"locale"`
	DBPath       string             `json:"db_path" yaml:"db_path" toml:"db_path"`
	ReportName   string             `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType   []string           `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir          string             `json:"dir" yaml:"dir" toml:"dir"`
	LogLevel     string             `json:"log_level" yaml:"log_level" toml:"log_level"`
	StrictDates  bool               `json:"strict_dates" yaml:"strict_dates" toml:"strict_dates"`
	Plausibility PlausibilityConfig `json:"plausibility" yaml:"plausibility" toml:"plausibility"`
	Upload       UploadConfig       `json:"upload" yaml:"upload" toml:"upload"`
}

// PlausibilityConfig sobrescreve os limites do filtro de plausibilidade.
// Um campo ausente (nil) mantém o padrão; zero é um valor válido.
type PlausibilityConfig struct {
	FuelMin     *float64 `json:"fuel_min,omitempty" yaml:"fuel_min,omitempty" toml:"fuel_min,omitempty"`
	FuelMax     *float64 `json:"fuel_max,omitempty" yaml:"fuel_max,omitempty" toml:"fuel_max,omitempty"`
	ElectricMin *float64 `json:"electric_min,omitempty" yaml:"electric_min,omitempty" toml:"electric_min,omitempty"`
	ElectricMax *float64 `json:"electric_max,omitempty" yaml:"electric_max,omitempty" toml:"electric_max,omitempty"`
}

// UploadConfig define o destino S3 dos relatórios exportados.
type UploadConfig struct {
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix  string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`
}

// Enabled reports whether an upload destination is configured.
func (u UploadConfig) Enabled() bool {
	return u.Bucket != ""
}
