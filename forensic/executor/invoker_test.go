package executor

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spance/forensic-go/forensic/audit"
	"github.com/spance/forensic-go/forensic/definitions"
)

type captureRecorder struct {
	entries []audit.Entry
}

func (c *captureRecorder) Record(entry audit.Entry) {
	c.entries = append(c.entries, entry)
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}
}

func TestInvokeMissingProgram(t *testing.T) {
	rec := &captureRecorder{}
	inv := NewExecInvoker(rec)

	result := inv.Invoke(context.Background(), "definitely-not-a-real-forensic-tool", []string{"version"}, time.Second)
	if result.Status != StatusNotFound {
		t.Fatalf("Expected not_found, got %s", result.Status)
	}
	if result.Succeeded() {
		t.Error("Missing program must not count as success")
	}
	if !errors.Is(result.Err(), definitions.ErrToolAbsent) {
		t.Errorf("Expected ErrToolAbsent, got %v", result.Err())
	}
	if len(rec.entries) != 1 || rec.entries[0].Status != string(StatusNotFound) {
		t.Errorf("Expected one not_found audit entry, got %+v", rec.entries)
	}
}

func TestInvokeExitCodes(t *testing.T) {
	requireUnix(t)
	inv := NewExecInvoker(nil)

	ok := inv.Invoke(context.Background(), "sh", []string{"-c", "echo hello"}, 5*time.Second)
	if !ok.Succeeded() || strings.TrimSpace(ok.Stdout) != "hello" {
		t.Fatalf("Expected clean run with stdout 'hello', got %+v", ok)
	}
	if ok.Err() != nil {
		t.Errorf("Expected nil error, got %v", ok.Err())
	}

	failed := inv.Invoke(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"}, 5*time.Second)
	if failed.Status != StatusCompleted || failed.ExitCode != 3 {
		t.Fatalf("Expected completed with exit 3, got %s/%d", failed.Status, failed.ExitCode)
	}
	if strings.TrimSpace(failed.Stderr) != "boom" {
		t.Errorf("Expected stderr 'boom', got %q", failed.Stderr)
	}
	if !errors.Is(failed.Err(), definitions.ErrToolNonZeroExit) {
		t.Errorf("Expected ErrToolNonZeroExit, got %v", failed.Err())
	}
}

func TestInvokeTimeoutKillsChild(t *testing.T) {
	requireUnix(t)
	inv := NewExecInvoker(nil)

	start := time.Now()
	result := inv.Invoke(context.Background(), "sh", []string{"-c", "echo partial; exec sleep 30"}, 300*time.Millisecond)
	elapsed := time.Since(start)

	if result.Status != StatusTimedOut {
		t.Fatalf("Expected timed_out, got %s", result.Status)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Invoke returned after %s, child was not stopped", elapsed)
	}
	if strings.TrimSpace(result.Stdout) != "partial" {
		t.Errorf("Expected partial stdout to be kept, got %q", result.Stdout)
	}
	if !errors.Is(result.Err(), definitions.ErrToolTimeout) {
		t.Errorf("Expected ErrToolTimeout, got %v", result.Err())
	}
}

func TestInvokeKeepsArgumentBoundaries(t *testing.T) {
	requireUnix(t)
	inv := NewExecInvoker(nil)

	// $# is the number of arguments after the script name.
	result := inv.Invoke(context.Background(), "sh", []string{"-c", `printf '%s|' "$#" "$1"`, "sh", "a b; rm -rf /"}, 5*time.Second)
	if !result.Succeeded() {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Stdout != "1|a b; rm -rf /|" {
		t.Errorf("Argument was split or interpreted: %q", result.Stdout)
	}
}
