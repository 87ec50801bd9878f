package logger

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// Options controls where and how much the logger writes.
type Options struct {
	Level     string // DEBUG, INFO, WARN, ERROR
	Directory string // empty disables file output
	MaxAge    int    // days
}

// LogFormatter log formatter structure
type LogFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

// Format format entry in custom format
func (f *LogFormatter) Format(entry *log.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(f.TimestampFormat)
	level := f.LevelDesc[entry.Level]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s [%s] %s", timestamp, level, entry.Message))
	for k, v := range entry.Data {
		b.WriteString(fmt.Sprintf(" %s=%v", k, v))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Init initializes the logger
func Init(opts Options) error {
	log.SetFormatter(&LogFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		LevelDesc:       []string{"PANIC", "FATAL", "ERROR", "WARN", "INFO", "DEBUG", "TRACE"},
	})
	log.SetLevel(parseLevel(opts.Level))

	if opts.Directory == "" {
		log.SetOutput(os.Stdout)
		return nil
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 2
	}

	dateFolder := filepath.Join(opts.Directory, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(dateFolder, 0755); err != nil {
		return fmt.Errorf("create log folder: %w", err)
	}

	rl, err := rotatelogs.New(
		filepath.Join(dateFolder, "%Y-%m-%d-%H.log"),
		rotatelogs.WithLinkName(filepath.Join(dateFolder, "current.log")),
		rotatelogs.WithRotationTime(time.Hour),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithHandler(rotatelogs.HandlerFunc(func(e rotatelogs.Event) {
			if e.Type() != rotatelogs.FileRotatedEventType {
				return
			}
			prev := e.(*rotatelogs.FileRotatedEvent).PreviousFile()
			if prev == "" {
				return
			}
			if err := compressLogFile(prev, prev+".gz"); err != nil {
				fmt.Fprintf(os.Stderr, "log compress failed: %v\n", err)
			}
		})),
	)
	if err != nil {
		return fmt.Errorf("init log rotation: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, rl))
	return nil
}

func parseLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Info logs informational messages
func Info(message string) {
	log.Info(message)
}

// Warn logs warning messages
func Warn(message string) {
	log.Warn(message)
}

// Error logs error messages
func Error(message string) {
	log.Error(message)
}

// Debug logs debug messages
func Debug(message string) {
	log.Debug(message)
}

// Infof logs formatted informational message
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs formatted warning message
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs formatted error message
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debugf logs formatted debug message
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// WithFields logs with additional context
func WithFields(fields map[string]interface{}, message string) {
	log.WithFields(log.Fields(fields)).Info(message)
}

// WriteLog writes a log entry at the specified level tagged with a
// correlation id and a short key.
func WriteLog(level string, correlationID string, key string, message interface{}) {
	if correlationID == "" {
		correlationID = "no-correlation-id"
	}

	msg := fmt.Sprintf("[%v] [%v] | %+v", key, correlationID, message)
	switch strings.ToUpper(level) {
	case "ERROR":
		log.Error(msg)
	case "WARN":
		log.Warn(msg)
	case "DEBUG":
		log.Debug(msg)
	default:
		log.Info(msg)
	}
}

// compressLogFile compresses a log file to gzip format
func compressLogFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat log file: %v", err)
	}

	gzf, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode())
	if err != nil {
		return fmt.Errorf("failed to open compressed log file: %v", err)
	}
	defer gzf.Close()

	gz := gzip.NewWriter(gzf)
	if _, err := io.Copy(gz, f); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
