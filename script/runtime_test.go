package script

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime(nil)

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
}

func TestRuntimeVariables(t *testing.T) {
	r := NewRuntime(nil)

	if _, err := r.Execute("var x = 42;"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result, err := r.Execute("x")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 42 {
		t.Errorf("Expected 42, got %v", result.ToInteger())
	}
}

func TestRuntimeConsole(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRuntime(zap.New(core))

	_, err := r.Execute(`
		console.log("test", 1, null);
		console.warn("warning");
		console.debug();
	`)
	if err != nil {
		t.Fatalf("console methods failed: %v", err)
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["message"]; got != "test 1 null" {
		t.Errorf("Expected 'test 1 null', got %v", got)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("Expected warn level, got %v", entries[1].Level)
	}
	if entries[0].LoggerName != "script" {
		t.Errorf("Expected logger name 'script', got %q", entries[0].LoggerName)
	}
}

func TestRuntimeErrors(t *testing.T) {
	r := NewRuntime(nil)
	var reported []error
	r.SetOnError(func(err error) { reported = append(reported, err) })

	if _, err := r.Execute("throw new Error('boom')"); err == nil {
		t.Fatal("Expected error from throw")
	}
	if _, err := r.Execute("function ("); err == nil {
		t.Fatal("Expected syntax error")
	}

	if len(r.Errors()) != 2 || len(reported) != 2 {
		t.Errorf("Expected 2 recorded errors, got %d (%d reported)", len(r.Errors()), len(reported))
	}
	r.ClearErrors()
	if len(r.Errors()) != 0 {
		t.Error("Expected errors to be cleared")
	}
}
