package bootstrap

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"

	"github.com/jc-juarez/lazarus-statusgen/pkg/config"
)

// LoggerOptions 日志初始化选项
type LoggerOptions struct {
	// Output 基础输出，默认 os.Stderr，生成器的 stdout 留给用户消息
	Output io.Writer
	// Registry 注册表路径，非空时每条日志都带上 registry 字段
	Registry string
}

// registryHook stamps the registry path on every entry.
type registryHook struct {
	registry string
}

func (h *registryHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *registryHook) Fire(entry *log.Entry) error {
	if _, ok := entry.Data["registry"]; !ok {
		entry.Data["registry"] = h.registry
	}
	return nil
}

// InitLogger 初始化日志，仅设置格式和级别
func InitLogger(cfg config.LogConfig) error {
	return InitLoggerWithOptions(cfg, LoggerOptions{})
}

// InitLoggerWithOptions 使用完整选项初始化日志
func InitLoggerWithOptions(cfg config.LogConfig, opts LoggerOptions) error {
	std := log.StandardLogger()

	// 设置日志格式
	switch cfg.Format {
	case "json":
		std.SetFormatter(&log.JSONFormatter{})
	default:
		std.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	// 设置日志级别
	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		std.SetLevel(lvl)
	} else {
		std.SetLevel(log.InfoLevel)
		std.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	std.SetReportCaller(cfg.ReportCaller)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	std.SetOutput(out)

	// 设置文件输出
	if cfg.File.Enabled {
		writer, err := newRotatingWriter(cfg.File)
		if err != nil {
			return err
		}
		std.SetOutput(io.MultiWriter(out, writer))
	}

	// 每次初始化都重置钩子，避免重复注册
	std.ReplaceHooks(make(log.LevelHooks))
	if opts.Registry != "" {
		std.AddHook(&registryHook{registry: opts.Registry})
	}

	return nil
}

// newRotatingWriter 设置日志文件输出
func newRotatingWriter(fileCfg config.LogFileConfig) (io.Writer, error) {
	logDir := fileCfg.Dir
	if logDir == "" {
		logDir = "./logs"
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Errorf("创建日志目录失败: %v", err)
		return nil, err
	}

	filename := fileCfg.Filename
	if filename == "" {
		filename = "statusgen"
	}

	maxAge := fileCfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}

	rotationDays := fileCfg.RotationDays
	if rotationDays <= 0 {
		rotationDays = 1
	}

	writer, err := rotatelogs.New(
		filepath.Join(logDir, filename+".%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(logDir, filename+".log")),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(rotationDays)*24*time.Hour),
	)
	if err != nil {
		log.Errorf("设置日志输出失败: %v", err)
		return nil, err
	}
	return writer, nil
}
