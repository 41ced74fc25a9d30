package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diillson/fuellog-go/internal/adapter/driven/config"
	"github.com/diillson/fuellog-go/internal/adapter/driven/export"
	"github.com/diillson/fuellog-go/internal/adapter/driven/i18n"
	"github.com/diillson/fuellog-go/internal/adapter/driven/storage/dataset"
	"github.com/diillson/fuellog-go/internal/adapter/driven/storage/sqlite"
	"github.com/diillson/fuellog-go/internal/adapter/driven/upload"
	"github.com/diillson/fuellog-go/internal/application/usecase"
	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
	"github.com/diillson/fuellog-go/pkg/version"
)

// ErrUploadWithoutBucket é devolvido quando --upload é pedido sem bucket configurado.
var ErrUploadWithoutBucket = errors.New("--upload requires --bucket or upload.bucket in the config file")

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	stderr     io.Writer
}

// runtimeEnv agrupa o que é derivado da configuração resolvida.
type runtimeEnv struct {
	args      *types.CLIArgs
	cfg       types.Config
	log       zerolog.Logger
	localizer *i18n.Localizer
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(configRepo repository.ConfigRepository, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		console:    console,
		stderr:     os.Stderr,
	}

	rootCmd := &cobra.Command{
		Use:           "fuellog",
		Short:         "Fuel and EV charging consumption & cost analytics",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "fuellog version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("db-path", "", "Path to the local SQLite event store (default: ~/.fuellog/fuellog.db)")
	flags.StringP("unit-system", "u", "", "Unit system for display: metric or imperial")
	flags.String("currency", "", "Currency code for display, e.g. EUR or USD")
	flags.StringP("locale", "l", "", "Locale for labels, numbers and dates, e.g. en, en-US, sl")
	flags.String("log-level", "", "Diagnostic log level: debug, info, warn, error")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Compute statistics for a vehicle and optionally export them",
		Args:  cobra.NoArgs,
		RunE:  app.runReport,
	}
	rf := reportCmd.Flags()
	rf.String("vehicle", "", "Vehicle id in the event store")
	rf.StringP("dataset", "f", "", "Read events from a JSON or YAML dataset file instead of the event store")
	rf.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rf.StringSliceP("report-type", "y", nil, "Specify report types: csv, html, pdf, xlsx, json")
	rf.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rf.Bool("strict-dates", false, "Fail instead of skipping events whose date cannot be read")
	rf.Bool("upload", false, "Upload the exported files to S3")
	rf.String("bucket", "", "S3 bucket for --upload")

	importCmd := &cobra.Command{
		Use:   "import <dataset-file>",
		Short: "Import a JSON or YAML dataset into the local event store",
		Args:  cobra.ExactArgs(1),
		RunE:  app.runImport,
	}
	importCmd.Flags().String("vehicle", "", "Vehicle id to import (default: the dataset's vehicle)")

	vehiclesCmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List the vehicles in the local event store",
		Args:  cobra.NoArgs,
		RunE:  app.runVehicles,
	}

	rootCmd.AddCommand(reportCmd, importCmd, vehiclesCmd)
	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs sobrescreve os argumentos (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

func getString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func getBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// parseArgs parses command-line arguments into a CLIArgs struct. Flags that a
// subcommand does not declare read as zero values.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	reportType, _ := cmd.Flags().GetStringSlice("report-type")

	dir := getString(cmd, "dir")
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:  getString(cmd, "config-file"),
		VehicleID:   getString(cmd, "vehicle"),
		DatasetFile: getString(cmd, "dataset"),
		DBPath:      getString(cmd, "db-path"),
		ReportName:  getString(cmd, "report-name"),
		ReportType:  reportType,
		Dir:         dir,
		UnitSystem:  getString(cmd, "unit-system"),
		Currency:    getString(cmd, "currency"),
		Locale:      getString(cmd, "locale"),
		LogLevel:    getString(cmd, "log-level"),
		StrictDates: getBool(cmd, "strict-dates"),
		Upload:      getBool(cmd, "upload"),
		Bucket:      getString(cmd, "bucket"),
	}, nil
}

// setup resolve a configuração e constrói logger e localizador.
func (app *CLIApp) setup(cmd *cobra.Command) (*runtimeEnv, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, err
	}

	var file *types.Config
	if args.ConfigFile != "" {
		file, err = app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	cfg := config.Resolve(file, args)

	log := config.NewLogger(cfg.LogLevel, app.stderr)
	localizer, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("locale", localizer.Locale()).Str("db", cfg.DBPath).Msg("configuration resolved")

	return &runtimeEnv{args: args, cfg: cfg, log: log, localizer: localizer}, nil
}

// openSource abre a fonte de eventos pedida. O dataset pode trazer suas
// próprias preferências, que valem abaixo das flags.
func (app *CLIApp) openSource(env *runtimeEnv) (repository.EventRepository, *entity.Preferences, func(), error) {
	if env.args.DatasetFile != "" {
		f, err := dataset.Load(env.args.DatasetFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return dataset.NewSource(f), f.Preferences, func() {}, nil
	}
	if env.args.VehicleID == "" {
		return nil, nil, nil, types.ErrNoDataSource
	}
	store, err := sqlite.New(env.cfg.DBPath, env.log)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, nil, func() { _ = store.Close() }, nil
}

// reportPreferences aplica as preferências do dataset quando a flag correspondente não foi dada.
func reportPreferences(env *runtimeEnv, fromData *entity.Preferences) entity.Preferences {
	prefs := config.Preferences(env.cfg)
	if fromData != nil {
		if env.args.UnitSystem == "" && fromData.UnitSystem != "" {
			prefs.UnitSystem = fromData.UnitSystem
		}
		if env.args.Currency == "" && fromData.Currency != "" {
			prefs.Currency = fromData.Currency
		}
	}
	return prefs.Normalized()
}

func (app *CLIApp) runReport(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner()

	env, err := app.setup(cmd)
	if err != nil {
		return err
	}
	if env.args.Upload && !env.cfg.Upload.Enabled() {
		return ErrUploadWithoutBucket
	}

	source, dataPrefs, closeSource, err := app.openSource(env)
	if err != nil {
		return err
	}
	defer closeSource()

	style := analytics.DateStyle{Locale: env.cfg.Locale, Location: time.Local}
	exportRepo := export.NewExportRepository(export.NewFormatter(env.localizer, style))

	var uploadRepo repository.UploadRepository
	if env.args.Upload {
		uploadRepo = upload.NewS3Repository(env.cfg.Upload, env.log)
	}

	uc := usecase.NewReportUseCase(exportRepo, uploadRepo, app.console, env.localizer, env.log)
	err = uc.RunReport(cmd.Context(), source, usecase.ReportRequest{
		VehicleID:   env.args.VehicleID,
		Preferences: reportPreferences(env, dataPrefs),
		Bounds:      config.Bounds(env.cfg),
		DatePolicy:  config.DatePolicy(env.cfg),
		DateStyle:   style,
		ReportName:  env.cfg.ReportName,
		ReportTypes: env.cfg.ReportType,
		Dir:         env.cfg.Dir,
		Upload:      env.args.Upload,
	})
	return app.explain(err)
}

func (app *CLIApp) runImport(cmd *cobra.Command, args []string) error {
	env, err := app.setup(cmd)
	if err != nil {
		return err
	}

	f, err := dataset.Load(args[0])
	if err != nil {
		return err
	}
	store, err := sqlite.New(env.cfg.DBPath, env.log)
	if err != nil {
		return err
	}
	defer store.Close()

	uc := usecase.NewImportUseCase(store, app.console, env.log)
	_, err = uc.Import(cmd.Context(), dataset.NewSource(f), env.args.VehicleID)
	return app.explain(err)
}

func (app *CLIApp) runVehicles(cmd *cobra.Command, _ []string) error {
	env, err := app.setup(cmd)
	if err != nil {
		return err
	}
	store, err := sqlite.New(env.cfg.DBPath, env.log)
	if err != nil {
		return err
	}
	defer store.Close()

	uc := usecase.NewReportUseCase(nil, nil, app.console, env.localizer, env.log)
	_, err = uc.ListVehicles(cmd.Context(), store)
	return err
}

// explain acrescenta uma dica ao erro quando o problema está nos dados.
func (app *CLIApp) explain(err error) error {
	if err == nil || !usecase.IsDataError(err) {
		return err
	}
	switch {
	case errors.Is(err, types.ErrVehicleNotFound):
		app.console.LogWarning("Run 'fuellog vehicles' to see the stored vehicle ids")
	case errors.Is(err, analytics.ErrInvalidDate):
		app.console.LogWarning("Drop --strict-dates to skip events with unreadable dates")
	}
	return err
}
