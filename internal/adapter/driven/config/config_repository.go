package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

const (
	defaultLocale   = "en"
	defaultLogLevel = "warn"
	defaultDBFile   = "fuellog.db"
	defaultReport   = "csv"
)

// Defaults devolve a configuração usada quando nem flag nem arquivo definem um valor.
func Defaults() types.Config {
	bounds := analytics.DefaultBounds()
	return types.Config{
		UnitSystem: "metric",
		Currency:   "EUR",
		Locale:     defaultLocale,
		DBPath:     defaultDBPath(),
		LogLevel:   defaultLogLevel,
		Plausibility: types.PlausibilityConfig{
			FuelMin:     &bounds.FuelMin,
			FuelMax:     &bounds.FuelMax,
			ElectricMin: &bounds.ElectricMin,
			ElectricMax: &bounds.ElectricMax,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDBFile
	}
	return filepath.Join(home, ".fuellog", defaultDBFile)
}

// Resolve merges the sources with precedence flag > file > defaults. file may be nil.
func Resolve(file *types.Config, args *types.CLIArgs) types.Config {
	cfg := Defaults()
	if file != nil {
		overlay(&cfg, *file)
	}
	if args != nil {
		overlay(&cfg, types.Config{
			UnitSystem:  args.UnitSystem,
			Currency:    args.Currency,
			Locale:      args.Locale,
			DBPath:      args.DBPath,
			ReportName:  args.ReportName,
			ReportType:  args.ReportType,
			Dir:         args.Dir,
			LogLevel:    args.LogLevel,
			StrictDates: args.StrictDates,
			Upload:      types.UploadConfig{Bucket: args.Bucket},
		})
	}
	if cfg.ReportName != "" && len(cfg.ReportType) == 0 {
		cfg.ReportType = []string{defaultReport}
	}
	return cfg
}

// overlay copies every non-zero value of src onto dst.
func overlay(dst *types.Config, src types.Config) {
	setString(&dst.UnitSystem, src.UnitSystem)
	setString(&dst.Currency, src.Currency)
	setString(&dst.Locale, src.Locale)
	setString(&dst.DBPath, src.DBPath)
	setString(&dst.ReportName, src.ReportName)
	setString(&dst.Dir, src.Dir)
	setString(&dst.LogLevel, src.LogLevel)
	if len(src.ReportType) > 0 {
		dst.ReportType = src.ReportType
	}
	if src.StrictDates {
		dst.StrictDates = true
	}

	setFloat(&dst.Plausibility.FuelMin, src.Plausibility.FuelMin)
	setFloat(&dst.Plausibility.FuelMax, src.Plausibility.FuelMax)
	setFloat(&dst.Plausibility.ElectricMin, src.Plausibility.ElectricMin)
	setFloat(&dst.Plausibility.ElectricMax, src.Plausibility.ElectricMax)

	setString(&dst.Upload.Bucket, src.Upload.Bucket)
	setString(&dst.Upload.Prefix, src.Upload.Prefix)
	setString(&dst.Upload.Profile, src.Upload.Profile)
	setString(&dst.Upload.Region, src.Upload.Region)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setFloat(dst **float64, v *float64) {
	if v != nil {
		f := *v
		*dst = &f
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Bounds converte a seção plausibility nos limites do motor de análise.
// Campos ausentes recebem o padrão; valores explícitos, inclusive zero, são mantidos.
func Bounds(cfg types.Config) analytics.PlausibilityBounds {
	d := analytics.DefaultBounds()
	p := cfg.Plausibility
	return analytics.PlausibilityBounds{
		FuelMin:     valueOr(p.FuelMin, d.FuelMin),
		FuelMax:     valueOr(p.FuelMax, d.FuelMax),
		ElectricMin: valueOr(p.ElectricMin, d.ElectricMin),
		ElectricMax: valueOr(p.ElectricMax, d.ElectricMax),
	}
}

// Preferences extrai as preferências do usuário da configuração resolvida.
func Preferences(cfg types.Config) entity.Preferences {
	return entity.Preferences{
		UnitSystem: entity.UnitSystem(cfg.UnitSystem),
		Currency:   cfg.Currency,
	}.Normalized()
}

// DatePolicy traduz strict_dates na política do normalizador.
func DatePolicy(cfg types.Config) analytics.DatePolicy {
	if cfg.StrictDates {
		return analytics.FailOnInvalidDate
	}
	return analytics.SkipInvalidDates
}
