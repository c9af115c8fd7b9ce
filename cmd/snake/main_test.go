package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// resetLogging restores the package logging state after a test.
func resetLogging(t *testing.T) {
	t.Helper()
	savedFile, savedLogger := flagLogFile, logger
	t.Cleanup(func() {
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
		flagLogFile, logger = savedFile, savedLogger
		flagPlain, flagHeadless = false, false
	})
}

func TestLogPath(t *testing.T) {
	resetLogging(t)

	tests := []struct {
		name    string
		cmd     *cobra.Command
		logFile string
		plain   bool
		want    string
	}{
		{"play defaults to file", playCmd, "", false, defaultLogFile},
		{"root defaults to file", rootCmd, "", false, defaultLogFile},
		{"replay defaults to file", replayCmd, "", false, defaultLogFile},
		{"serve logs to stderr", serveCmd, "", false, ""},
		{"plain listing logs to stderr", replaysCmd, "", true, ""},
		{"explicit file wins", serveCmd, "/tmp/x.log", false, "/tmp/x.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagLogFile = tt.logFile
			if err := replaysCmd.Flags().Set("plain", strconv.FormatBool(tt.plain)); err != nil {
				t.Fatalf("setting --plain: %v", err)
			}
			if got := logPath(tt.cmd); got != tt.want {
				t.Errorf("logPath(%s) = %q, expected %q", tt.cmd.Name(), got, tt.want)
			}
		})
	}
}

func TestSetupLoggerKeepsTUIOffStderr(t *testing.T) {
	resetLogging(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	flagLogFile = ""

	if err := setupLogger(playCmd, nil); err != nil {
		t.Fatalf("setupLogger() failed: %v", err)
	}
	logger.Warn("board too small", "rows", 2)
	logCloser.Close()
	logCloser = nil

	data, err := os.ReadFile(filepath.Join(home, ".snake", "snake.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "board too small") {
		t.Errorf("log file = %q, expected the warning", data)
	}
}

func TestSetupLoggerRejectsLevel(t *testing.T) {
	resetLogging(t)
	saved := flagLogLevel
	t.Cleanup(func() { flagLogLevel = saved })

	flagLogLevel = "loud"
	if err := setupLogger(serveCmd, nil); err == nil {
		t.Error("setupLogger() should reject an unknown level")
	}
}
