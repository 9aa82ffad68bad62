package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// FileEnv names the environment variable pointing at an optional config file.
const FileEnv = "SKYSATISFY_CONFIG"

// Keys are dotted so that a config file can nest them; the environment
// variable for each key is its upper-cased form with dots replaced by
// underscores (boost.max_depth -> BOOST_MAX_DEPTH).
const (
	KeyHTTPPort            = "http.port"
	KeyGRPCPort            = "grpc.port"
	KeyDatasetPath         = "dataset.file_path"
	KeyModelDir            = "model.dir"
	KeyDatabaseURL         = "database.url"
	KeyKafkaBrokers        = "kafka.brokers"
	KeyKafkaTopic          = "kafka.topic"
	KeyEnvironment         = "environment"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
	KeyOTLPEndpoint        = "otel.exporter_otlp_endpoint"
	KeyTLSCertFile         = "tls.cert_file"
	KeyTLSKeyFile          = "tls.key_file"
	KeyPredictionCacheSize = "prediction.cache_size"
	KeyBoostEta            = "boost.eta"
	KeyBoostMaxDepth       = "boost.max_depth"
	KeyBoostMinChildWeight = "boost.min_child_weight"
	KeyBoostRounds         = "boost.rounds"
	KeyBoostNThread        = "boost.nthread"
	KeyBoostSeed           = "boost.seed"
	KeyCVFolds             = "cv.folds"
	KeyCVSeed              = "cv.seed"
)

// Config holds all configuration for the satisfaction service.
type Config struct {
	HTTPPort    string
	GRPCPort    string
	DatasetPath string
	ModelDir    string

	// DatabaseURL selects the Postgres prediction log. Empty keeps the log
	// in memory.
	DatabaseURL string

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	Environment  string
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string

	TLSCertFile string
	TLSKeyFile  string

	PredictionCacheSize int

	Boost boost.Params
	KFold evaluation.KFold
}

// Load reads configuration from defaults, the optional config file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load over a caller-supplied viper instance, which lets the CLI
// bind its flags to the same keys before loading.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(FileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	params := boost.DefaultParams()
	params.Eta = v.GetFloat64(KeyBoostEta)
	params.MaxDepth = v.GetInt(KeyBoostMaxDepth)
	params.MinChildWeight = v.GetFloat64(KeyBoostMinChildWeight)
	params.NumBoostRound = v.GetInt(KeyBoostRounds)
	params.NThread = v.GetInt(KeyBoostNThread)
	params.Seed = v.GetUint64(KeyBoostSeed)

	kf := evaluation.DefaultKFold()
	kf.Splits = v.GetInt(KeyCVFolds)
	kf.Seed = v.GetUint64(KeyCVSeed)

	cfg := &Config{
		HTTPPort:            v.GetString(KeyHTTPPort),
		GRPCPort:            v.GetString(KeyGRPCPort),
		DatasetPath:         v.GetString(KeyDatasetPath),
		ModelDir:            v.GetString(KeyModelDir),
		DatabaseURL:         v.GetString(KeyDatabaseURL),
		KafkaBrokers:        stringList(v, KeyKafkaBrokers),
		KafkaTopic:          v.GetString(KeyKafkaTopic),
		Environment:         v.GetString(KeyEnvironment),
		LogLevel:            v.GetString(KeyLogLevel),
		LogFormat:           v.GetString(KeyLogFormat),
		OTLPEndpoint:        v.GetString(KeyOTLPEndpoint),
		TLSCertFile:         v.GetString(KeyTLSCertFile),
		TLSKeyFile:          v.GetString(KeyTLSKeyFile),
		PredictionCacheSize: v.GetInt(KeyPredictionCacheSize),
		Boost:               params,
		KFold:               kf,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := boost.DefaultParams()
	kf := evaluation.DefaultKFold()

	v.SetDefault(KeyHTTPPort, "5000")
	v.SetDefault(KeyGRPCPort, "9090")
	v.SetDefault(KeyDatasetPath, "data/data.csv")
	v.SetDefault(KeyModelDir, "models")
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyKafkaBrokers, "")
	v.SetDefault(KeyKafkaTopic, "skysatisfy.events")
	v.SetDefault(KeyEnvironment, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyOTLPEndpoint, "")
	v.SetDefault(KeyTLSCertFile, "")
	v.SetDefault(KeyTLSKeyFile, "")
	v.SetDefault(KeyPredictionCacheSize, 10000)
	v.SetDefault(KeyBoostEta, defaults.Eta)
	v.SetDefault(KeyBoostMaxDepth, defaults.MaxDepth)
	v.SetDefault(KeyBoostMinChildWeight, defaults.MinChildWeight)
	v.SetDefault(KeyBoostRounds, defaults.NumBoostRound)
	v.SetDefault(KeyBoostNThread, defaults.NThread)
	v.SetDefault(KeyBoostSeed, defaults.Seed)
	v.SetDefault(KeyCVFolds, kf.Splits)
	v.SetDefault(KeyCVSeed, kf.Seed)
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if err := c.Boost.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.KFold.Splits < 2 {
		return fmt.Errorf("config: cv.folds must be at least 2, got %d", c.KFold.Splits)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("config: tls.cert_file and tls.key_file must be set together")
	}
	if c.PredictionCacheSize < 1 {
		return fmt.Errorf("config: prediction.cache_size must be positive, got %d", c.PredictionCacheSize)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("config: kafka.topic is required when kafka.brokers is set")
	}
	return nil
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// ModelPath returns the location of the serialized booster.
func (c *Config) ModelPath() string {
	return filepath.Join(c.ModelDir, "model.bin")
}

// MetricsPath returns the location of the cross-validation metrics.
func (c *Config) MetricsPath() string {
	return filepath.Join(c.ModelDir, "metrics.json")
}

// TLSEnabled reports whether the gRPC server should terminate TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != ""
}

// stringList reads key as either a list (config file) or a comma-separated
// string (environment, flags).
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		out = append(out, splitList(item)...)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
