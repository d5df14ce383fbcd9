package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spance/forensic-go/forensic/audit"
	"github.com/spance/forensic-go/forensic/definitions"
)

const (
	defaultTimeout = 10 * time.Second
	// waitDelay bounds how long Wait keeps draining pipes after the child
	// has been killed; grandchildren may still hold them open.
	waitDelay = time.Second
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusNotFound  Status = "not_found"
	StatusTimedOut  Status = "timed_out"
)

// Result captures one external program run. It holds no process state.
type Result struct {
	Program  string
	Args     []string
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration

	startErr error
}

// Succeeded reports a completed run with a zero exit code.
func (r *Result) Succeeded() bool {
	return r.Status == StatusCompleted && r.ExitCode == 0
}

// Err maps the run onto the tool error taxonomy. It is nil on success.
func (r *Result) Err() error {
	switch {
	case r.Status == StatusNotFound:
		if r.startErr != nil {
			return fmt.Errorf("%s: %w (%v)", r.Program, definitions.ErrToolAbsent, r.startErr)
		}
		return fmt.Errorf("%s: %w", r.Program, definitions.ErrToolAbsent)
	case r.Status == StatusTimedOut:
		return fmt.Errorf("%s: %w after %s", r.Program, definitions.ErrToolTimeout, r.Duration.Round(time.Millisecond))
	case r.ExitCode != 0:
		msg := strings.TrimSpace(r.Stderr)
		if msg == "" {
			return fmt.Errorf("%s: %w %d", r.Program, definitions.ErrToolNonZeroExit, r.ExitCode)
		}
		return fmt.Errorf("%s: %w %d: %s", r.Program, definitions.ErrToolNonZeroExit, r.ExitCode, msg)
	}
	return nil
}

// Invoker runs one external program and never fails on absence, timeout or
// non-zero exit; those are reported through the Result.
type Invoker interface {
	Invoke(ctx context.Context, program string, args []string, timeout time.Duration) *Result
}

// ExecInvoker runs programs found on PATH with os/exec, without a shell.
type ExecInvoker struct {
	Recorder audit.Recorder
}

func NewExecInvoker(recorder audit.Recorder) *ExecInvoker {
	return &ExecInvoker{Recorder: recorder}
}

func (r *ExecInvoker) Invoke(ctx context.Context, program string, args []string, timeout time.Duration) *Result {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	result := &Result{
		Program: program,
		Args:    slices.Clone(args),
	}
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		r.record(result, start)
	}()

	log.Debug().Str("cmd", fmt.Sprintf("[Invoke] run cmd: %s %s", program, strings.Join(args, " "))).Msg("")

	path, err := exec.LookPath(program)
	if err != nil {
		log.Debug().Err(err).Str("program", program).Msg("[Invoke] program not found")
		result.Status = StatusNotFound
		result.ExitCode = -1
		result.startErr = err
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Str("program", program).Msg("[Invoke] start failed")
		result.Status = StatusNotFound
		result.ExitCode = -1
		result.startErr = err
		return result
	}

	err = cmd.Wait()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		result.Status = StatusTimedOut
		result.ExitCode = -1
		log.Warn().Str("program", program).Dur("timeout", timeout).Msg("[Invoke] run cmd timed out")
	case err == nil:
		result.Status = StatusCompleted
	case errors.As(err, &exitErr):
		result.Status = StatusCompleted
		result.ExitCode = exitErr.ExitCode()
	default:
		// exec.ErrWaitDelay and friends: the process itself has exited.
		result.Status = StatusCompleted
		result.ExitCode = -1
		if cmd.ProcessState != nil {
			result.ExitCode = cmd.ProcessState.ExitCode()
		}
		log.Debug().Err(err).Str("program", program).Msg("[Invoke] wait returned error")
	}

	log.Debug().
		Str("program", program).
		Str("status", string(result.Status)).
		Int("exit_code", result.ExitCode).
		Int("stdout_bytes", len(result.Stdout)).
		Msg("[Invoke] cmd finished")
	return result
}

func (r *ExecInvoker) record(result *Result, start time.Time) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.Record(audit.Entry{
		Program:  result.Program,
		Args:     result.Args,
		Status:   string(result.Status),
		ExitCode: result.ExitCode,
		Start:    start,
		Duration: result.Duration,
	})
}
