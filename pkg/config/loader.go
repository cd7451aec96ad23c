package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// LoadOptions 加载配置选项
type LoadOptions struct {
	ConfigFile    string   // 显式指定的配置文件，优先于搜索
	ConfigPaths   []string // 搜索目录，默认 "." 和 "./configs"
	ConfigName    string   // 配置文件名（不含扩展名），默认 "statusgen"
	EnvPrefix     string   // 环境变量前缀，用于 viper.AutomaticEnv
	AllowNoConfig bool     // 允许没有配置文件，纯默认值/环境变量配置
}

// DefaultLoadOptions returns the options used by the statusgen CLI.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		ConfigPaths:   []string{".", "./configs"},
		ConfigName:    "statusgen",
		EnvPrefix:     "STATUSGEN",
		AllowNoConfig: true,
	}
}

// LoadConfig 通用配置加载函数
// cfg 必须是指向配置结构体的指针
func LoadConfig(cfg interface{}, opts ...LoadOptions) error {
	opt := DefaultLoadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	// 加载 .env 文件
	envFile := os.Getenv("ENV_FILE")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s failed: %w", envFile, err)
			}
		}
	} else {
		if err := godotenv.Load(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load .env failed: %w", err)
			}
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opt.ConfigFile != "" {
		v.SetConfigFile(opt.ConfigFile)
	} else {
		name := opt.ConfigName
		if name == "" {
			name = fmt.Sprintf("config_%s", GetEnv())
		}
		v.SetConfigName(name)
		for _, p := range opt.ConfigPaths {
			v.AddConfigPath(p)
		}
	}

	// 配置环境变量支持
	if opt.EnvPrefix != "" {
		v.SetEnvPrefix(opt.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		bindEnvKeys(v, cfg)
	}

	// 尝试读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) && opt.AllowNoConfig && opt.ConfigFile == "" {
			// 允许没有配置文件，使用默认值与环境变量
		} else {
			return fmt.Errorf("read config failed: %w", err)
		}
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return fmt.Errorf("unmarshal config failed: %w", err)
	}

	return nil
}

// Load reads the statusgen configuration, applies defaults and resolves
// secrets.
func Load(opts LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(cfg, opts); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	cfg.Notify.SigningSecret = GetSecretOrEnv("STATUSGEN_SIGNING_SECRET", cfg.Notify.SigningSecret)
	cfg.Notify.Kafka.Password = GetSecretOrEnv("STATUSGEN_KAFKA_PASSWORD", cfg.Notify.Kafka.Password)
	cfg.Notify.Redis.Password = GetSecretOrEnv("STATUSGEN_REDIS_PASSWORD", cfg.Notify.Redis.Password)
	return cfg, nil
}

// bindEnvKeys registers every mapstructure key of cfg so AutomaticEnv also
// applies to keys absent from the config file.
func bindEnvKeys(v *viper.Viper, cfg interface{}) {
	var m map[string]interface{}
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return
	}
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]interface{}); ok {
				walk(key, sub)
				continue
			}
			_ = v.BindEnv(key)
		}
	}
	walk("", m)
}

// GetEnv 获取当前环境，默认为 "dev"
func GetEnv() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		return "dev"
	}
	return env
}
