package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/spance/forensic-go/forensic/definitions"
)

// ProbeStep is one row of a backend's bypass probe table.
//
// Commands run in order. If any of them cannot run at all (tool absent or
// timed out) the step fails with FailureNote. Otherwise Evaluate decides the
// outcome from every result; a step without commands reports Note.
type ProbeStep struct {
	Name        string
	Commands    []CommandTemplate
	Evaluate    func(results []*Result) (success bool, note string)
	Note        string
	FailureNote string
	// Extra is copied into the outcome. String and []string values are
	// rendered with the step vars into fresh values.
	Extra map[string]any
}

// RunProbes runs every step in table order. A failing step never stops the
// ones after it.
func RunProbes(ctx context.Context, inv Invoker, steps []ProbeStep, vars Vars) []definitions.StepOutcome {
	outcomes := make([]definitions.StepOutcome, 0, len(steps))
	for _, step := range steps {
		outcomes = append(outcomes, runProbe(ctx, inv, step, vars))
	}
	return outcomes
}

func runProbe(ctx context.Context, inv Invoker, step ProbeStep, vars Vars) (outcome definitions.StepOutcome) {
	outcome = definitions.StepOutcome{
		Name:  step.Name,
		Extra: renderExtra(step.Extra, vars),
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("step", step.Name).Interface("panic", p).Msg("[RunProbes] step panicked")
			outcome.Success = false
			outcome.Note = fmt.Sprintf("step failed: %v", p)
		}
	}()

	results := make([]*Result, 0, len(step.Commands))
	for _, cmd := range step.Commands {
		result := cmd.Run(ctx, inv, vars)
		results = append(results, result)
		if result.Status != StatusCompleted {
			log.Debug().Str("step", step.Name).Err(result.Err()).Msg("[RunProbes] command did not complete")
			outcome.Note = fmt.Sprintf("%s: %v", step.FailureNote, result.Err())
			return outcome
		}
	}

	if step.Evaluate == nil {
		outcome.Note = step.Note
		return outcome
	}
	outcome.Success, outcome.Note = step.Evaluate(results)
	return outcome
}

func renderExtra(extra map[string]any, vars Vars) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		switch val := v.(type) {
		case string:
			v = renderToken(val, vars)
		case []string:
			v = lo.Map(val, func(s string, _ int) string { return renderToken(s, vars) })
		}
		out[k] = v
	}
	return out
}

// ExtractionStep is one row of a backend's extraction table: the command's
// stdout becomes FileName inside the output directory.
type ExtractionStep struct {
	FileName string
	Command  CommandTemplate
	// Streaming commands never exit on their own. Their timeout is a capture
	// window, so a timeout with output counts as success.
	Streaming bool
}

// RunExtractions creates outputDir and runs every step in table order. Only
// steps whose command succeeded and whose file was fully written are listed
// in extracted.
func RunExtractions(ctx context.Context, inv Invoker, steps []ExtractionStep, vars Vars, outputDir string) (extracted, errs []string) {
	extracted = []string{}
	errs = []string{}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", outputDir).Msg("[RunExtractions] create output dir failed")
		return extracted, append(errs, fmt.Sprintf("create output directory %s: %v", outputDir, err))
	}

	for _, step := range steps {
		result := step.Command.Run(ctx, inv, vars)
		captured := step.Streaming && result.Status == StatusTimedOut && result.Stdout != ""
		if !result.Succeeded() && !captured {
			errs = append(errs, fmt.Sprintf("%s: %v", step.FileName, result.Err()))
			continue
		}
		if err := WriteArtifact(outputDir, step.FileName, []byte(result.Stdout)); err != nil {
			log.Error().Err(err).Str("file", step.FileName).Msg("[RunExtractions] write artifact failed")
			errs = append(errs, fmt.Sprintf("%s: %v", step.FileName, err))
			continue
		}
		log.Debug().Str("file", step.FileName).Int("bytes", len(result.Stdout)).Msg("[RunExtractions] artifact written")
		extracted = append(extracted, step.FileName)
	}
	return extracted, errs
}

// WriteArtifact replaces dir/name with data. The content goes to a temporary
// sibling first so the final name only ever points at a complete file.
func WriteArtifact(dir, name string, data []byte) error {
	final := filepath.Join(dir, name)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.partial", name, uuid.New().String()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp) // no-op after a successful rename
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
