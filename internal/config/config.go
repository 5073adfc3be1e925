// Package config loads the server configuration from YAML with environment
// overrides.
//
// Values are resolved in this order, later sources winning:
//
//  1. Default()
//  2. the YAML file passed to Load
//  3. CMSTHEME_* environment variables, after .env files are loaded
//
// Example:
//
//	server:
//	  addr: ":8080"
//	database:
//	  driver: postgres
//	  dsn: postgres://cms@localhost/cms
//	blog:
//	  per_page: 5
//	choices:
//	  spacer_sizes:
//	    - {value: "0", label: "None"}
//	    - {value: "5", label: "Huge"}
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig     `yaml:"server"`
	Log      LogConfig        `yaml:"log"`
	Database DatabaseConfig   `yaml:"database"`
	Blog     BlogConfig       `yaml:"blog"`
	Theme    ThemeConfig      `yaml:"theme"`
	I18n     I18nConfig       `yaml:"i18n"`
	Choices  model.ChoiceSets `yaml:"choices"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"CMSTHEME_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"CMSTHEME_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"CMSTHEME_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CMSTHEME_SHUTDOWN_TIMEOUT"`
	Metrics         bool          `yaml:"metrics" env:"CMSTHEME_METRICS"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"CMSTHEME_LOG_LEVEL"`
	Format string `yaml:"format" env:"CMSTHEME_LOG_FORMAT"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"CMSTHEME_DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"CMSTHEME_DB_DSN"`
	// Seed loads the bundled sample posts into an empty database on start.
	Seed bool `yaml:"seed" env:"CMSTHEME_DB_SEED"`
}

type BlogConfig struct {
	BasePath    string `yaml:"base_path" env:"CMSTHEME_BLOG_BASE_PATH"`
	PerPage     int    `yaml:"per_page" env:"CMSTHEME_BLOG_PER_PAGE"`
	Radius      int    `yaml:"radius" env:"CMSTHEME_BLOG_RADIUS"`
	SearchParam string `yaml:"search_param" env:"CMSTHEME_BLOG_SEARCH_PARAM"`
	PageParam   string `yaml:"page_param" env:"CMSTHEME_BLOG_PAGE_PARAM"`
}

type ThemeConfig struct {
	Name    string `yaml:"name" env:"CMSTHEME_THEME"`
	Variant string `yaml:"variant" env:"CMSTHEME_THEME_VARIANT"`
	// Manifest is an optional YAML manifest path registered next to the
	// bundled theme.
	Manifest     string `yaml:"manifest" env:"CMSTHEME_THEME_MANIFEST"`
	VariantParam string `yaml:"variant_param" env:"CMSTHEME_THEME_VARIANT_PARAM"`
	// Templates overrides the embedded templates with a directory on disk.
	Templates string `yaml:"templates" env:"CMSTHEME_TEMPLATES_DIR"`
}

type I18nConfig struct {
	Languages []string `yaml:"languages" env:"CMSTHEME_LANGUAGES"`
	Default   string   `yaml:"default" env:"CMSTHEME_LANGUAGE"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "cmstheme.db",
		},
		Blog: BlogConfig{
			BasePath:    "/blog",
			PerPage:     10,
			Radius:      1,
			SearchParam: "q",
			PageParam:   "page",
		},
		Theme: ThemeConfig{
			Name:         "cmstheme",
			VariantParam: "variant",
		},
		I18n: I18nConfig{
			Languages: []string{"en", "de"},
			Default:   "en",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be %s or %s", c.Database.Driver, DriverSQLite, DriverPostgres))
	}
	if c.Blog.PerPage < 1 {
		errs = append(errs, fmt.Errorf("blog.per_page must be positive, got %d", c.Blog.PerPage))
	}
	if c.Blog.Radius < 0 {
		errs = append(errs, fmt.Errorf("blog.radius must not be negative, got %d", c.Blog.Radius))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if len(c.I18n.Languages) == 0 {
		errs = append(errs, errors.New("i18n.languages must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("config: load .env: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}
		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		if val, ok := os.LookupEnv(name); ok && val != "" {
			setFieldFromString(field, val)
		}
	}
}

func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if d, err := time.ParseDuration(val); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			field.SetBool(b)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(val, ",")
			out := parts[:0]
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			field.Set(reflect.ValueOf(out))
		}
	}
}
