package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger логгер сервиса поверх zerolog.
// Методы принимают printf-формат, чтобы слои сервиса зависели только
// от узкого интерфейса Info/Warn/Error и не тянули zerolog напрямую.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// New создает логгер. Если filePath пуст, пишет в stdout.
// Уровень: debug | info | warn | error (по умолчанию info).
func New(filePath, level string) (*Logger, error) {
	parsedLevel := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
		}
		parsedLevel = parsed
	}

	output := io.Writer(os.Stdout)
	var closer io.Closer

	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		output = file
		closer = file
	}

	zl := zerolog.New(output).Level(parsedLevel).With().Timestamp().Logger()

	return &Logger{zl: zl, closer: closer}, nil
}

// Debug пишет сообщение уровня debug
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Info пишет сообщение уровня info
func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warn пишет сообщение уровня warn
func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Error пишет сообщение уровня error
func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение уровня fatal и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
