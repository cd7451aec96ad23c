package config

import "path/filepath"

// ApplyDefaults 应用全部默认值
func (c *Config) ApplyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	c.Registry.ApplyDefaults()
	c.Targets.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Notify.ApplyDefaults()
}

// Resolve joins a configured path with Root unless it is absolute.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// ==================== RegistryConfig 默认值 ====================

// ApplyDefaults 应用 Registry 配置默认值
func (r *RegistryConfig) ApplyDefaults() {
	if r.Path == "" {
		r.Path = "status_codes.yaml"
	}
}

// ==================== TargetsConfig 默认值 ====================

// ApplyDefaults 应用生成目标默认值
func (t *TargetsConfig) ApplyDefaults() {
	if t.Generator == "" {
		t.Generator = "statusgen"
	}
	if t.Native.Path == "" {
		t.Native.Path = "src/status/status.hh"
	}
	if t.Native.Project == "" {
		t.Native.Project = "Lazarus Data Store"
	}
	if t.Native.Namespace == nil {
		t.Native.Namespace = []string{"lazarus", "status"}
	}
	if t.Native.Include == "" {
		t.Native.Include = "status_code.hh"
	}
	if t.Native.HTTPType == "" {
		t.Native.HTTPType = "drogon::HttpStatusCode"
	}
	if t.Native.HTTPInclude == "" {
		t.Native.HTTPInclude = "drogon/drogon.h"
	}
	if t.Dynamic.Path == "" {
		t.Dynamic.Path = "sdk/python/lazarus_client/status.py"
	}
	if t.Dynamic.Project == "" {
		t.Dynamic.Project = t.Native.Project
	}
	if t.Dynamic.ClassName == "" {
		t.Dynamic.ClassName = "LazarusStatus"
	}
}

// ==================== LogConfig 默认值 ====================

// ApplyDefaults 应用日志配置默认值
func (l *LogConfig) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "text"
	}
	if l.Level == "" {
		l.Level = "info"
	}
	if l.File.Dir == "" {
		l.File.Dir = "./logs"
	}
	if l.File.Filename == "" {
		l.File.Filename = "statusgen"
	}
	if l.File.MaxAgeDays <= 0 {
		l.File.MaxAgeDays = 7
	}
	if l.File.RotationDays <= 0 {
		l.File.RotationDays = 1
	}
}

// ==================== TracingConfig 默认值 ====================

// ApplyDefaults 应用 Tracing 配置默认值
func (t *TracingConfig) ApplyDefaults() {
	if t.Exporter == "" {
		t.Exporter = "disabled"
	}
	if t.ServiceName == "" {
		t.ServiceName = "statusgen"
	}
	if t.SampleRatio <= 0 {
		t.SampleRatio = 1.0
	}
}

// ==================== NotifyConfig 默认值 ====================

// ApplyDefaults 应用通知配置默认值
func (n *NotifyConfig) ApplyDefaults() {
	if n.Backend == "" {
		n.Backend = "none"
	}
	if n.Timeout <= 0 {
		n.Timeout = 5
	}
	if n.Issuer == "" {
		n.Issuer = "statusgen"
	}
	if n.Kafka.Topic == "" {
		n.Kafka.Topic = "statusgen.registry"
	}
	if n.Kafka.ClientID == "" {
		n.Kafka.ClientID = "statusgen"
	}
	if n.Kafka.MaxAttempts <= 0 {
		n.Kafka.MaxAttempts = 3
	}
	if n.Redis.Channel == "" {
		n.Redis.Channel = "statusgen.registry"
	}
}
