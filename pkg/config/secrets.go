package config

import (
	"os"
	"strings"
)

// GetSecretOrEnv 从 Docker Secret 文件或环境变量读取敏感信息
// 优先级: {NAME}_FILE 指定的文件 > {NAME} 环境变量 > 默认值
//
// 示例:
//
//	secret := GetSecretOrEnv("STATUSGEN_SIGNING_SECRET", cfg.Notify.SigningSecret)
//	// 如果 STATUSGEN_SIGNING_SECRET_FILE=/run/secrets/statusgen 存在，读取文件内容
//	// 否则读取 STATUSGEN_SIGNING_SECRET 环境变量
//	// 都不存在则返回配置文件中的值
func GetSecretOrEnv(name string, defaultValue string) string {
	filePath := os.Getenv(name + "_FILE")
	if filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	if value := os.Getenv(name); value != "" {
		return value
	}

	return defaultValue
}
