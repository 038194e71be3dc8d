package logger

import (
	"testing"

	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndLevelString(t *testing.T) {
	defer Init("info")
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFilteringAndPrintln(t *testing.T) {
	core, logs := observer.New(atom)
	restore := replaceCore(core)
	defer restore()
	defer Init("info")

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg %d", 7)

	if n := logs.FilterMessage("debug-msg").Len(); n != 0 {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("info-msg").Len(); n != 0 {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("warn-msg").Len(); n != 1 {
		t.Fatalf("warn message missing: %v", logs.All())
	}
	if n := logs.FilterMessage("error-msg 7").Len(); n != 1 {
		t.Fatalf("error message missing: %v", logs.All())
	}

	// Println maps to info and is suppressed at warn
	logs.TakeAll()
	Println("hello")
	if logs.Len() != 0 {
		t.Fatalf("Println should be suppressed at warn level")
	}

	Init("info")
	Println("hello", "world")
	if n := logs.FilterMessage("hello world").Len(); n != 1 {
		t.Fatalf("Println expected at info level, got: %v", logs.All())
	}
}

func TestLReturnsReplacedLogger(t *testing.T) {
	core, logs := observer.New(atom)
	restore := replaceCore(core)
	defer restore()

	L().Info("structured")
	if logs.FilterMessage("structured").Len() != 1 {
		t.Fatalf("expected structured entry, got %v", logs.All())
	}
}
