package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Unknown levels fall back to info and any
// format other than "json" uses the text formatter.
func New(level string, format string, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	if output != nil {
		logger.SetOutput(output)
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}

// GormWriter adapts a logrus logger to gorm's Printf-style writer.
type GormWriter struct {
	Logger logrus.FieldLogger
}

func (writer GormWriter) Printf(format string, args ...interface{}) {
	writer.Logger.WithField("component", "gorm").Warnf(format, args...)
}
