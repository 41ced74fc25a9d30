package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	VehicleID   string
	DatasetFile string
	DBPath      string
	ReportName  string
	ReportType  []string
	Dir         string
	UnitSystem  string
	Currency    string
	Locale      string
	LogLevel    string
	StrictDates bool
	Upload      bool
	Bucket      string
}
