package config

// Config represents the complete application configuration
type Config struct {
	Admin    AdminConfig    `mapstructure:"admin" yaml:"admin"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	App      AppConfig      `mapstructure:"app" yaml:"app"`
	Radarr   RadarrConfig   `mapstructure:"radarr" yaml:"radarr"`
	Rule     RuleConfig     `mapstructure:"rule" yaml:"rule"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
}

// AdminConfig holds admin user credentials for the settings API
type AdminConfig struct {
	Username    string `mapstructure:"username" yaml:"username"`
	Password    string `mapstructure:"password" yaml:"password"`
	DisableAuth bool   `mapstructure:"disable_auth" yaml:"disable_auth"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// AppConfig holds general application settings
type AppConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	RunOnStartup bool   `mapstructure:"run_on_startup" yaml:"run_on_startup"`
}

// RadarrConfig holds the Radarr connection settings. Verified is only set
// true by a successful connection test and is reset whenever URL or APIKey
// change; a non-dry run refuses to start while it is false.
type RadarrConfig struct {
	URL            string `mapstructure:"url" yaml:"url"`
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Verified       bool   `mapstructure:"verified" yaml:"verified"`
}

// RuleConfig holds the tag+age deletion rule
type RuleConfig struct {
	TagLabel           string `mapstructure:"tag_label" yaml:"tag_label"`
	DaysOld            int    `mapstructure:"days_old" yaml:"days_old"`
	DryRun             bool   `mapstructure:"dry_run" yaml:"dry_run"`
	DeleteFiles        bool   `mapstructure:"delete_files" yaml:"delete_files"`
	AddImportExclusion bool   `mapstructure:"add_import_exclusion" yaml:"add_import_exclusion"`
}

// ScheduleConfig holds the cron schedule settings
type ScheduleConfig struct {
	Cron string `mapstructure:"cron" yaml:"cron"`
}
