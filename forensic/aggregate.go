package forensic

import (
	"github.com/samber/lo"

	"github.com/spance/forensic-go/forensic/definitions"
)

// AggregateBypass folds probe outcomes into a bypass payload. One
// successful step is enough for an overall success.
func AggregateBypass(steps []definitions.StepOutcome) *definitions.BypassResult {
	if steps == nil {
		steps = []definitions.StepOutcome{}
	}
	succeeded := lo.Filter(steps, func(step definitions.StepOutcome, _ int) bool {
		return step.Success
	})
	notes := lo.Map(succeeded, func(step definitions.StepOutcome, _ int) string {
		return step.Name + " succeeded"
	})
	return &definitions.BypassResult{
		Attempted:    true,
		MethodsTried: steps,
		Success: lo.SomeBy(steps, func(step definitions.StepOutcome) bool {
			return step.Success
		}),
		Notes: notes,
	}
}

// AggregateExtract wraps extraction output. There is no verdict: a partial
// extraction is a complete, valid result.
func AggregateExtract(outputDir string, extracted, errs []string) *definitions.ExtractResult {
	if extracted == nil {
		extracted = []string{}
	}
	if errs == nil {
		errs = []string{}
	}
	return &definitions.ExtractResult{
		OutputDir:      outputDir,
		ExtractedItems: extracted,
		Errors:         errs,
	}
}
