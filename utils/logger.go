package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	InitLogger()
}

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// SetJSONFormat switches both loggers to JSON output, used outside development.
func SetJSONFormat() {
	InfoLogger.SetFormatter(&logrus.JSONFormatter{})
	ErrorLogger.SetFormatter(&logrus.JSONFormatter{})
}

// SetLevel parses a logrus level name and applies it to the info logger.
// Unknown names keep the current level.
func SetLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		InfoLogger.Warnf("unknown log level %q, keeping %s", name, InfoLogger.GetLevel())
		return
	}
	InfoLogger.SetLevel(level)
}
