package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultConfigName         = "config"
	defaultMaxRequestBodySize = "100KB"
)

// Roster data sources.
const (
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

// Dashboard defaults applied when the YAML leaves a field empty.
const (
	DefaultTable        = "tutor_settings"
	DefaultFetchTimeout = 10 * time.Second
	DefaultLoadingGrace = 1500 * time.Millisecond
	DefaultMountTTL     = 2 * time.Minute
	DefaultCookieName   = "sb-access-token"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Supabase REST endpoint, used when dashboard.source is "supabase"
	Supabase *SupabaseConfig `json:"supabase" yaml:"supabase"`

	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`

	// Auth guards the dashboard with Supabase-issued access tokens
	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SupabaseConfig defines the hosted REST endpoint of the project.
type SupabaseConfig struct {
	URL     string        `json:"url" yaml:"url"`
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DashboardConfig defines how the roster is loaded and how long a mount lives.
type DashboardConfig struct {
	// Source selects the roster backend: "postgres" or "supabase"
	Source string `json:"source" yaml:"source"`

	// Table is the remote table holding tutor settings
	Table string `json:"table" yaml:"table"`

	// FetchTimeout bounds the single read issued by a mount
	FetchTimeout time.Duration `json:"fetchTimeout" yaml:"fetchTimeout"`

	// LoadingGrace is how long a page request waits before rendering the loading view
	LoadingGrace time.Duration `json:"loadingGrace" yaml:"loadingGrace"`

	// MountTTL is how long an unobserved mount is kept before it is unmounted
	MountTTL time.Duration `json:"mountTTL" yaml:"mountTTL"`
}

// AuthConfig defines the access-token guard in front of the dashboard.
type AuthConfig struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	JWTSecret    string `json:"jwtSecret" yaml:"jwtSecret"`
	RequiredRole string `json:"requiredRole" yaml:"requiredRole"`
	CookieName   string `json:"cookieName" yaml:"cookieName"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: DASHBOARD_FETCHTIMEOUT -> dashboard.fetchTimeout (not dashboard.fetchtimeout)
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads config.yaml from the working directory or one of the config folders above it.
func New() (*Config, error) {
	return Load(defaultConfigName, "config", "../config", "../../config")
}

// Load reads the named config file from the given search paths and applies defaults.
func Load(name string, paths ...string) (*Config, error) {
	cfg, err := LoadWithEnv[Config](name, paths...)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	dash := &cfg.Dashboard
	if dash.Source == "" {
		dash.Source = SourcePostgres
	}
	dash.Source = strings.ToLower(dash.Source)
	if dash.Table == "" {
		dash.Table = DefaultTable
	}
	if dash.FetchTimeout <= 0 {
		dash.FetchTimeout = DefaultFetchTimeout
	}
	if dash.LoadingGrace <= 0 {
		dash.LoadingGrace = DefaultLoadingGrace
	}
	if dash.MountTTL <= 0 {
		dash.MountTTL = DefaultMountTTL
	}

	if cfg.Auth != nil && cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = DefaultCookieName
	}
}

func (cfg *Config) validate() error {
	switch cfg.Dashboard.Source {
	case SourcePostgres:
		if cfg.Postgres == nil {
			return errors.New("postgres section is required for the postgres source")
		}
	case SourceSupabase:
		if cfg.Supabase == nil || cfg.Supabase.URL == "" {
			return errors.New("supabase.url is required for the supabase source")
		}
	default:
		return errors.Errorf("unknown dashboard source: %s", cfg.Dashboard.Source)
	}

	// An idle mount must outlive its own fetch.
	if cfg.Dashboard.MountTTL <= cfg.Dashboard.FetchTimeout {
		return errors.Errorf("dashboard.mountTTL (%s) must be longer than dashboard.fetchTimeout (%s)",
			cfg.Dashboard.MountTTL, cfg.Dashboard.FetchTimeout)
	}

	if cfg.Auth != nil && cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required when auth is enabled")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
