// 日志初始化
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"time"
)

var _zapLogger *zap.SugaredLogger

// 创建控制台格式的日志。datetime控制是否输出时间，debugMode控制日志级别（DEBUG或INFO），colors控制级别是否带颜色
func Initialize(datetime bool, debugMode bool, colors bool) (*zap.SugaredLogger, error) {
	zapConfig := zap.NewProductionConfig()

	zapConfig.Encoding = "console"
	zapConfig.DisableStacktrace = !debugMode
	zapConfig.OutputPaths = []string{"stderr"}

	if datetime {
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {}
	}

	if debugMode {
		zapConfig.Level.SetLevel(zapcore.DebugLevel)
	} else {
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	if colors {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	unsugared, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "创建日志出错")
	}

	_zapLogger = unsugared.Sugar()
	return _zapLogger, nil
}

// 返回已初始化的日志。未初始化时返回不输出任何内容的日志
func Logger() *zap.SugaredLogger {
	if _zapLogger == nil {
		return zap.NewNop().Sugar()
	}
	return _zapLogger
}
