// Package logger is the process-wide diagnostic channel, backed by logrus
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// EnvLogLevel is the environment variable read when no level is configured
const EnvLogLevel = "LOG_LEVEL"

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

// InitializeAndConfigure sets up the logger with the JSON formatter and the
// given level. An empty level falls back to LOG_LEVEL, then to info.
func InitializeAndConfigure(level string) {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	configureLogLevel(level)
}

func configureLogLevel(levelStr string) {
	log.SetLevel(logrus.InfoLevel)

	if levelStr == "" {
		levelStr = os.Getenv(EnvLogLevel)
	}
	if levelStr == "" {
		return
	}

	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'", levelStr)
		return
	}

	log.SetLevel(level)
	log.Debugf("Log level set to '%s'", level)
}

// SetOutput redirects log output, e.g. to a file while a terminal UI owns stdout
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel changes the level at runtime; invalid values are ignored
func SetLevel(levelStr string) {
	if level, err := logrus.ParseLevel(strings.ToLower(levelStr)); err == nil {
		log.SetLevel(level)
	}
}

// Debug logs a message at the debug level
func Debug(args ...interface{}) {
	log.Debug(args...)
}

// Info logs a message at the Info level
func Info(args ...interface{}) {
	log.Info(args...)
}

// Warn logs a message at the Warn level
func Warn(args ...interface{}) {
	log.Warn(args...)
}

// Error logs a message at the Error level
func Error(args ...interface{}) {
	log.Error(args...)
}

// Fatal logs a message at the Fatal level
func Fatal(args ...interface{}) {
	log.Fatal(args...)
}

// Debugf logs a message at the Debugf level
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs a message at the Infof level
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs a message at the Warnf level
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs a message at the Errorf level
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Fatalf logs a message at the Fatalf level
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// InfoWithFields logs a message at the info level with additional fields
func InfoWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Info(msg)
}

// DebugWithFields logs a message at the debug level with additional fields
func DebugWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// WarnWithFields logs a message at the warn level with additional fields
func WarnWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// ErrorWithFields logs a message at the error level with additional fields
func ErrorWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Error(msg)
}

// APILogger returns a fiber middleware logging one line per request
func APILogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
			"ip":       c.IP(),
		}
		if err != nil {
			fields["error"] = err.Error()
			log.WithFields(fields).Error("request failed")
			return err
		}
		log.WithFields(fields).Debug("request handled")
		return nil
	}
}
