package logger

import (
	"bytes"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger - обертка над zap.
// Логгер, созданный через New, пишет в буфер, содержимое которого
// выводится на странице (Logs). Все методы можно вызывать у nil.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New - логгер одного запроса, пишет в буфер для страницы.
func New() *ZapLogger {
	logBuf := &bytes.Buffer{}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(logBuf), zap.DebugLevel)

	return &ZapLogger{
		log:    build(core),
		logBuf: logBuf,
	}
}

// NewConsole - логгер процесса (сервер, CLI).
func NewConsole(w io.Writer, level zapcore.Level) *ZapLogger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(zapcore.AddSync(w)), level)
	return &ZapLogger{log: build(core)}
}

// FromCore оборачивает готовое ядро zap (например, observer в тестах).
func FromCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{log: build(core)}
}

func Nop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

func build(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

// Named возвращает дочерний логгер с тем же буфером.
func (z *ZapLogger) Named(name string) *ZapLogger {
	if z == nil {
		return nil
	}
	return &ZapLogger{log: z.log.Named(name), logBuf: z.logBuf}
}

// Zap - исходный логгер, например для передачи в сторонние библиотеки.
func (z *ZapLogger) Zap() *zap.Logger {
	if z == nil {
		return zap.NewNop()
	}
	return z.log
}

// UpdateLogs переводит накопленный буфер в HTML.
// Дочерние логгеры пишут в общий буфер, но Logs обновляют только свои.
func (z *ZapLogger) UpdateLogs() {
	if z == nil || z.logBuf == nil {
		return
	}
	htmlLogs := ansiToHTML(z.logBuf.String())
	z.Logs = []string{htmlLogs}
}

func (z *ZapLogger) ClearLogs() {
	if z == nil {
		return
	}
	if z.logBuf != nil {
		z.logBuf.Reset()
	}
	z.Logs = nil
}

func (z *ZapLogger) Sync() error {
	if z == nil {
		return nil
	}
	return z.log.Sync()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Fatal(wrappedMsg, fields...)
}
