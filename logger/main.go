package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is an instance of the global logrus.Logger
var Log *logrus.Logger

func init() {
	InitLogger()
}

// InitLogger initializes the USI client logger. Logs go to stderr so that
// decoded service results on stdout stay readable.
func InitLogger() *logrus.Logger {
	if Log == nil {
		logLevel := logrus.InfoLevel

		Log = &logrus.Logger{
			Out:          os.Stderr,
			Level:        logLevel,
			ReportCaller: true,
			Hooks:        make(logrus.LevelHooks),
		}

		formatter := &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyFunc:  "caller",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		}

		Log.SetFormatter(formatter)
	}

	return Log
}

// SetLevel parses level and applies it to the global logger. An unknown level
// leaves the logger at info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		InitLogger().WithFields(logrus.Fields{"level": level}).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	InitLogger().SetLevel(lvl)
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	InitLogger().SetOutput(w)
}
