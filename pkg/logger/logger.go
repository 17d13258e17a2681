package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger логгер сервиса поверх logrus с printf-интерфейсом
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// New создает логгер, который пишет в stdout и, если указан, в файл
func New(file, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{}
	var out io.Writer = os.Stdout
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		out = io.MultiWriter(os.Stdout, f)
	}
	base.SetOutput(out)

	l.entry = logrus.NewEntry(base)
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (для тестов и утилит)
func NewWithWriter(w io.Writer, level logrus.Level) *Logger {
	base := logrus.New()
	base.SetLevel(level)
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return &Logger{entry: logrus.NewEntry(base)}
}

// WithField возвращает логгер с дополнительным полем
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
