package cmd

import (
	"os"

	"github.com/haierkeys/note-resource-service/pkg/logger"

	"go.uber.org/zap"
)

// bootstrapLogger 启动阶段日志器
// 用于在主日志器初始化之前记录启动过程中的日志
var bootstrapLogger *zap.Logger

func init() {
	// 根据 DEBUG 环境变量设置日志级别
	level := "info"
	if os.Getenv("DEBUG") != "" {
		level = "debug"
	}

	lg, err := logger.NewLogger(logger.Config{Level: level})
	if err != nil {
		lg = zap.NewExample()
	}
	bootstrapLogger = lg
}

// BootstrapLogger 获取启动阶段日志器
func BootstrapLogger() *zap.Logger {
	return bootstrapLogger
}
