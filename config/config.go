package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultEnvFile            = ".env"
	defaultMaxRequestBodySize = "16KB"
	defaultStoreTimeout       = 5 * time.Second

	// argon2id defaults, matching the parameters the node argon2 package writes.
	defaultArgon2Memory      = 64 * 1024
	defaultArgon2Iterations  = 3
	defaultArgon2Parallelism = 4
	defaultArgon2SaltLength  = 16
	defaultArgon2KeyLength   = 32
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

	// Migrate applies the embedded schema migrations on startup.
	Migrate bool `json:"migrate" yaml:"migrate"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// AuthConfig defines credential handling configuration
type AuthConfig struct {
	// StoreTimeout bounds every account store round trip. Zero disables the bound.
	StoreTimeout time.Duration `json:"storeTimeout" yaml:"storeTimeout"`

	Argon2 Argon2Config `json:"argon2" yaml:"argon2"`
}

// Argon2Config holds the argon2id cost parameters used for new hashes.
// Existing hashes are always verified with the parameters encoded in them.
type Argon2Config struct {
	Memory        uint32 `json:"memory" yaml:"memory"` // KiB
	Iterations    uint32 `json:"iterations" yaml:"iterations"`
	Parallelism   uint8  `json:"parallelism" yaml:"parallelism"`
	SaltLength    uint32 `json:"saltLength" yaml:"saltLength"`
	KeyLength     uint32 `json:"keyLength" yaml:"keyLength"`
	MaxConcurrent int    `json:"maxConcurrent" yaml:"maxConcurrent"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
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

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// POSTGRES_SSLMODE -> postgres.sslMode, aligned with the YAML keys already loaded.
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

func New() (*Config, error) {
	if err := loadDotEnv(defaultEnvFile); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is required")
	}

	// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

// loadDotEnv exports the variables of an optional .env file into the process
// environment. Variables that are already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrapf(err, "stat %s", path)
	}

	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{StoreTimeout: defaultStoreTimeout}
	}

	a := &cfg.Auth.Argon2
	if a.Memory == 0 {
		a.Memory = defaultArgon2Memory
	}
	if a.Iterations == 0 {
		a.Iterations = defaultArgon2Iterations
	}
	if a.Parallelism == 0 {
		a.Parallelism = defaultArgon2Parallelism
	}
	if a.SaltLength == 0 {
		a.SaltLength = defaultArgon2SaltLength
	}
	if a.KeyLength == 0 {
		a.KeyLength = defaultArgon2KeyLength
	}
	if a.MaxConcurrent <= 0 {
		a.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
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

// buildReplicasFromEnv builds the read replica list from
// POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
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
