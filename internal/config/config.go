package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"statreport/adapters/chart"
	"statreport/adapters/excel"
	"statreport/internal"
	"statreport/internal/errors"
	ireport "statreport/internal/report"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. STATREPORT_SERVER_PORT.
const EnvPrefix = "STATREPORT"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
	Charts  ChartsConfig  `mapstructure:"charts" yaml:"charts"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string        `mapstructure:"port" yaml:"port"`
	GinMode     string        `mapstructure:"gin_mode" yaml:"gin_mode"`
	MaxUploadMB int           `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	UploadTTL   time.Duration `mapstructure:"upload_ttl" yaml:"upload_ttl"`
}

// DataConfig holds spreadsheet reading settings
type DataConfig struct {
	SheetName        string  `mapstructure:"sheet_name" yaml:"sheet_name"`
	NumericThreshold float64 `mapstructure:"numeric_threshold" yaml:"numeric_threshold"`
}

// ReportConfig holds document layout settings
type ReportConfig struct {
	Title       string  `mapstructure:"title" yaml:"title"`
	MaxColumns  int     `mapstructure:"max_columns" yaml:"max_columns"`
	ImageWidth  float64 `mapstructure:"image_width" yaml:"image_width"`
	ImageHeight float64 `mapstructure:"image_height" yaml:"image_height"`
	FontSize    float64 `mapstructure:"font_size" yaml:"font_size"`
	Timestamp   string  `mapstructure:"timestamp" yaml:"timestamp"` // RFC 3339
}

// ChartsConfig holds chart rendering settings
type ChartsConfig struct {
	Width         int    `mapstructure:"width" yaml:"width"`
	Height        int    `mapstructure:"height" yaml:"height"`
	HeatmapWidth  int    `mapstructure:"heatmap_width" yaml:"heatmap_width"`
	HeatmapHeight int    `mapstructure:"heatmap_height" yaml:"heatmap_height"`
	Theme         string `mapstructure:"theme" yaml:"theme"`
	RenderWorkers int    `mapstructure:"render_workers" yaml:"render_workers"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.max_upload_mb", 25)
	v.SetDefault("server.upload_ttl", 30*time.Minute)

	v.SetDefault("data.sheet_name", "")
	v.SetDefault("data.numeric_threshold", 1.0)

	v.SetDefault("report.title", ireport.DefaultTitle)
	v.SetDefault("report.max_columns", 10)
	v.SetDefault("report.image_width", 400.0)
	v.SetDefault("report.image_height", 250.0)
	v.SetDefault("report.font_size", 8.0)
	v.SetDefault("report.timestamp", "2000-01-01T00:00:00Z")

	v.SetDefault("charts.width", 640)
	v.SetDefault("charts.height", 400)
	v.SetDefault("charts.heatmap_width", 800)
	v.SetDefault("charts.heatmap_height", 480)
	v.SetDefault("charts.theme", chart.DefaultTheme)
	v.SetDefault("charts.render_workers", 0)

	v.SetDefault("logging.level", "INFO")
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it. Precedence: env > file > defaults. An
// empty cfgFile looks for ./statreport.yaml and ignores its absence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// the conventional names win over nothing but lose to the prefixed ones
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.gin_mode", EnvPrefix+"_SERVER_GIN_MODE", "GIN_MODE")
	_ = v.BindEnv("logging.level", EnvPrefix+"_LOGGING_LEVEL", "LOG_LEVEL")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", cfgFile)
		}
	} else {
		v.SetConfigName("statreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read statreport.yaml")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	if err := validateConfig(&c); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &c, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func Save(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validateConfig(c *Config) error {
	switch {
	case c.Server.Port == "":
		return errors.ConfigInvalid("server.port is required")
	case c.Server.MaxUploadMB <= 0:
		return errors.ConfigInvalid("server.max_upload_mb must be positive")
	case c.Server.UploadTTL <= 0:
		return errors.ConfigInvalid("server.upload_ttl must be positive")
	case c.Data.NumericThreshold <= 0 || c.Data.NumericThreshold > 1:
		return errors.ConfigInvalid("data.numeric_threshold must be in (0, 1]")
	case c.Report.MaxColumns <= 0:
		return errors.ConfigInvalid("report.max_columns must be positive")
	case c.Report.ImageWidth <= 0 || c.Report.ImageHeight <= 0:
		return errors.ConfigInvalid("report image size must be positive")
	case c.Report.FontSize <= 0:
		return errors.ConfigInvalid("report.font_size must be positive")
	case c.Charts.Width <= 0 || c.Charts.Height <= 0 || c.Charts.HeatmapWidth <= 0 || c.Charts.HeatmapHeight <= 0:
		return errors.ConfigInvalid("chart sizes must be positive")
	case c.Charts.RenderWorkers < 0:
		return errors.ConfigInvalid("charts.render_workers must not be negative")
	}
	if _, err := c.Report.Time(); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("report.timestamp: %v", err))
	}
	if _, ok := internal.ParseLogLevel(c.Logging.Level); !ok {
		return errors.ConfigInvalid(fmt.Sprintf("logging.level %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", c.Logging.Level))
	}
	return nil
}

// Time parses the pinned document timestamp.
func (r ReportConfig) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Timestamp)
}

// ReaderConfig returns the spreadsheet reader settings.
func (c *Config) ReaderConfig() excel.ExcelConfig {
	cfg := excel.DefaultExcelConfig()
	cfg.SheetName = c.Data.SheetName
	cfg.CoercionConfig.NumericThreshold = c.Data.NumericThreshold
	return cfg
}

// ChartOptions returns the renderer settings.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{
		Width:         c.Charts.Width,
		Height:        c.Charts.Height,
		HeatmapWidth:  c.Charts.HeatmapWidth,
		HeatmapHeight: c.Charts.HeatmapHeight,
		DefaultTheme:  c.Charts.Theme,
	}
}

// ReportOptions returns the document layout.
func (c *Config) ReportOptions() ireport.Options {
	ts, _ := c.Report.Time()
	return ireport.Options{
		Title:       c.Report.Title,
		MaxColumns:  c.Report.MaxColumns,
		ImageWidth:  c.Report.ImageWidth,
		ImageHeight: c.Report.ImageHeight,
		FontSize:    c.Report.FontSize,
		Timestamp:   ts.UTC(),
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() internal.LogLevel {
	level, ok := internal.ParseLogLevel(c.Logging.Level)
	if !ok {
		return internal.LogLevelInfo
	}
	return level
}

// NewLogger builds the root logger at the configured level.
func (c *Config) NewLogger() *internal.Logger {
	return internal.NewLogger(c.LogLevel())
}
