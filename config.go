package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile    = "./config.yml"
	ConfigEnvFile = "./config.env"
	EnvPrefix     = "BSHELF"
	// DefaultAPIKey is the admin key used when none is configured.
	DefaultAPIKey = "sekretnyklucz"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit               string        `yaml:"git_commit" envconfig:"BSHELF_GIT_COMMIT"`
	GitTag                  string        `yaml:"git_tag" envconfig:"BSHELF_GIT_TAG"`
	BuildTime               string        `yaml:"build_time" envconfig:"BSHELF_BUILD_TIME"`
	IsProduction            bool          `yaml:"is_production" envconfig:"BSHELF_IS_PRODUCTION"`
	LogLevel                zapcore.Level `yaml:"log_level" envconfig:"BSHELF_LOG_LEVEL"`
	LogFolder               string        `yaml:"log_folder" envconfig:"BSHELF_LOG_FOLDER"`
	LogMaxSize              int           `yaml:"log_max_size" envconfig:"BSHELF_LOG_MAX_SIZE"` // in megabytes
	LogMaxFiles             int           `yaml:"log_max_files" envconfig:"BSHELF_LOG_MAX_FILES"`
	OpsEndpointsEnable      bool          `yaml:"ops_endpoints_enable" envconfig:"BSHELF_OPS_ENDPOINTS_ENABLE"`
	ProfilerEndpointsEnable bool          `yaml:"profiler_endpoints_enable" envconfig:"BSHELF_PROFILER_ENDPOINTS_ENABLE"`
	APIKey                  string        `yaml:"api_key" json:"-" envconfig:"BSHELF_API_KEY"`
	Server                  ServerConfig  `yaml:"server"`
	CORS                    CORSConfig    `yaml:"cors"`
	Storage                 StorageConfig `yaml:"storage"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BSHELF_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BSHELF_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BSHELF_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BSHELF_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BSHELF_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BSHELF_SERVER_SHUTDOWN_TIMEOUT"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"BSHELF_CORS_ALLOWED_ORIGINS"`
}

type StorageConfig struct {
	Driver   string       `yaml:"driver" envconfig:"BSHELF_STORAGE_DRIVER"`
	DataFile string       `yaml:"data_file" envconfig:"BSHELF_STORAGE_DATA_FILE"`
	BoltDB   BoltDBConfig `yaml:"boltdb"`
	Redis    RedisConfig  `yaml:"redis"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BSHELF_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BSHELF_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"BSHELF_BOLTDB_BUCKET_NAME"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BSHELF_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"BSHELF_REDIS_PORT"`
	Key           string        `yaml:"key" envconfig:"BSHELF_REDIS_KEY"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BSHELF_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BSHELF_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BSHELF_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BSHELF_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BSHELF_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"BSHELF_REDIS_USERNAME"`
	Password      string        `yaml:"password" json:"-" envconfig:"BSHELF_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BSHELF_REDIS_DATABASE_INDEX"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.APIKey) == 0 {
		config.APIKey = os.Getenv("API_KEY")
	}
	if len(config.APIKey) == 0 {
		config.APIKey = DefaultAPIKey
	}

	if len(config.LogFolder) == 0 {
		config.LogFolder = "./logs"
	}
	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}
	if config.LogMaxFiles <= 0 {
		config.LogMaxFiles = 5
	}

	if config.Server.RequestTimeout <= 0 {
		config.Server.RequestTimeout = 30 * time.Second
	}
	if config.Server.ShutdownTimeout <= 0 {
		config.Server.ShutdownTimeout = 10 * time.Second
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	return initStorageConfig(&config.Storage)
}

func initStorageConfig(config *StorageConfig) error {
	if len(config.Driver) == 0 {
		config.Driver = FileDriver
	}

	switch config.Driver {
	case FileDriver:
		if len(config.DataFile) == 0 {
			config.DataFile = "./data.json"
		}
	case MemoryDriver:
	case BoltDriver:
		if len(config.BoltDB.FilePath) == 0 {
			config.BoltDB.FilePath = "./data.bolt.db"
		}
		if len(config.BoltDB.BucketName) == 0 {
			config.BoltDB.BucketName = "bookshelf"
		}
		if config.BoltDB.Timeout <= 0 {
			config.BoltDB.Timeout = 5 * time.Second
		}
	case RedisDriver:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
		if len(config.Redis.Key) == 0 {
			config.Redis.Key = "bookshelf"
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Driver)
	}
	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(ConfigFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration. The env file is optional.
	err = godotenv.Load(ConfigEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BSHELF`.
	err = LoadConfigEnvs(EnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
