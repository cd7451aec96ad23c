package config

// ==================== 根配置 ====================

// Config is the complete statusgen configuration.
type Config struct {
	// Root is the project directory every relative path is resolved against.
	Root     string         `yaml:"root" mapstructure:"root"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Targets  TargetsConfig  `yaml:"targets" mapstructure:"targets"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Tracing  TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
	Notify   NotifyConfig   `yaml:"notify" mapstructure:"notify"`
}

// ==================== 注册表与生成目标 ====================

// RegistryConfig locates the registry file.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
	// RequireFailRecord makes a registry without a "fail" record invalid.
	RequireFailRecord bool `yaml:"require_fail_record" mapstructure:"require_fail_record"`
}

// TargetsConfig groups the two generated outputs.
type TargetsConfig struct {
	Generator string        `yaml:"generator" mapstructure:"generator"`
	Native    NativeConfig  `yaml:"native" mapstructure:"native"`
	Dynamic   DynamicConfig `yaml:"dynamic" mapstructure:"dynamic"`
}

// NativeConfig configures the C++ header.
type NativeConfig struct {
	Path        string   `yaml:"path" mapstructure:"path"`
	Project     string   `yaml:"project" mapstructure:"project"`
	Namespace   []string `yaml:"namespace" mapstructure:"namespace"`
	Include     string   `yaml:"include" mapstructure:"include"`
	HTTPType    string   `yaml:"http_type" mapstructure:"http_type"`
	HTTPInclude string   `yaml:"http_include" mapstructure:"http_include"`
}

// DynamicConfig configures the Python enum module.
type DynamicConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Project   string `yaml:"project" mapstructure:"project"`
	ClassName string `yaml:"class_name" mapstructure:"class_name"`
}

// ==================== 日志 ====================

// LogConfig 日志配置
type LogConfig struct {
	Format       string        `yaml:"format" mapstructure:"format"`
	Level        string        `yaml:"level" mapstructure:"level"`
	ReportCaller bool          `yaml:"report_caller" mapstructure:"report_caller"`
	File         LogFileConfig `yaml:"file" mapstructure:"file"`
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// ==================== 可观测性配置 ====================

// TracingConfig 分布式追踪配置
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"`
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	Headers      map[string]string `yaml:"headers" mapstructure:"headers"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}

// ==================== 变更通知 ====================

// NotifyConfig controls registry change events.
type NotifyConfig struct {
	// Backend supports: "none" | "kafka" | "redis" (default: none).
	Backend       string      `yaml:"backend" mapstructure:"backend"`
	Timeout       Duration    `yaml:"timeout" mapstructure:"timeout"`
	SigningSecret string      `yaml:"signing_secret" mapstructure:"signing_secret"`
	Issuer        string      `yaml:"issuer" mapstructure:"issuer"`
	Kafka         KafkaConfig `yaml:"kafka" mapstructure:"kafka"`
	Redis         RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers" mapstructure:"brokers"`
	Topic         string   `yaml:"topic" mapstructure:"topic"`
	ClientID      string   `yaml:"client_id" mapstructure:"client_id"`
	Username      string   `yaml:"username" mapstructure:"username"`
	Password      string   `yaml:"password" mapstructure:"password"`
	SASLMechanism string   `yaml:"sasl_mechanism" mapstructure:"sasl_mechanism"`
	TLSEnabled    bool     `yaml:"tls_enabled" mapstructure:"tls_enabled"`
	// RequiredAcks supports: "none" | "one" | "all" (default: all).
	RequiredAcks string `yaml:"required_acks" mapstructure:"required_acks"`
	MaxAttempts  int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Db       int    `yaml:"db" mapstructure:"db"`
	Channel  string `yaml:"channel" mapstructure:"channel"`
}
