// Package logging wires the optional debug log file.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Open returns a logger backed by a rotating file under
// %LOCALAPPDATA%\quickclean. Rotation keeps the log from silently eating the
// disk space the tool exists to free.
func Open() (*log.Logger, error) {
	local := os.Getenv("LOCALAPPDATA")
	if local == "" {
		return nil, fmt.Errorf("LOCALAPPDATA not set, nowhere to log")
	}

	dir := filepath.Join(local, "quickclean")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "quickclean.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}
	return log.New(writer, "", log.LstdFlags), nil
}
