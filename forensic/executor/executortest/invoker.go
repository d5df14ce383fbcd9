// Package executortest provides a scripted executor.Invoker for tests.
package executortest

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/spance/forensic-go/forensic/executor"
)

// Invoker answers invocations from a script. Lookups try the full command
// line first, then the bare program name; anything unscripted behaves like a
// missing binary.
type Invoker struct {
	byCommand map[string]*executor.Result
	byProgram map[string]*executor.Result
	Calls     []string
}

func New() *Invoker {
	return &Invoker{
		byCommand: map[string]*executor.Result{},
		byProgram: map[string]*executor.Result{},
	}
}

// On scripts the result for an exact command line, e.g. "adb -s X shell id".
func (f *Invoker) On(commandLine string, result *executor.Result) *Invoker {
	f.byCommand[commandLine] = result
	return f
}

// OnProgram scripts the result for every call to program.
func (f *Invoker) OnProgram(program string, result *executor.Result) *Invoker {
	f.byProgram[program] = result
	return f
}

func (f *Invoker) Invoke(_ context.Context, program string, args []string, _ time.Duration) *executor.Result {
	commandLine := strings.TrimSpace(program + " " + strings.Join(args, " "))
	f.Calls = append(f.Calls, commandLine)

	scripted, ok := f.byCommand[commandLine]
	if !ok {
		scripted, ok = f.byProgram[program]
	}
	if !ok {
		scripted = &executor.Result{Status: executor.StatusNotFound, ExitCode: -1}
	}

	result := *scripted
	result.Program = program
	result.Args = slices.Clone(args)
	return &result
}

// Called reports whether commandLine was invoked.
func (f *Invoker) Called(commandLine string) bool {
	return slices.Contains(f.Calls, commandLine)
}

func Completed(stdout string) *executor.Result {
	return &executor.Result{Status: executor.StatusCompleted, Stdout: stdout}
}

func Failed(exitCode int, stderr string) *executor.Result {
	return &executor.Result{Status: executor.StatusCompleted, ExitCode: exitCode, Stderr: stderr}
}

func TimedOut(partialStdout string) *executor.Result {
	return &executor.Result{Status: executor.StatusTimedOut, ExitCode: -1, Stdout: partialStdout}
}
