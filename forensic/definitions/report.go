package definitions

import (
	json "github.com/bytedance/sonic"

	"github.com/spance/forensic-go/constants"
)

// Operation names one action the runner can dispatch.
type Operation string

const (
	OpList      Operation = constants.ActionList
	OpInfo      Operation = constants.ActionInfo
	OpBypass    Operation = constants.ActionBypass
	OpExtract   Operation = constants.ActionExtract
	OpCheckDeps Operation = constants.ActionCheckDeps
)

// RequiresDevice reports whether the operation is scoped to a single device.
func (o Operation) RequiresDevice() bool {
	return o == OpInfo || o == OpBypass || o == OpExtract
}

// StepOutcome is the result of one probe or extraction sub-action.
// Extra fields are flattened next to the fixed ones when serialized.
type StepOutcome struct {
	Name    string
	Success bool
	Note    string
	Extra   map[string]any
}

const (
	stepKeyName    = "name"
	stepKeySuccess = "success"
	stepKeyNote    = "note"
)

func (s StepOutcome) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		out[k] = v
	}
	out[stepKeyName] = s.Name
	out[stepKeySuccess] = s.Success
	if s.Note != "" {
		out[stepKeyNote] = s.Note
	}
	return json.Marshal(out)
}

func (s *StepOutcome) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = StepOutcome{}
	for k, v := range raw {
		switch k {
		case stepKeyName:
			s.Name, _ = v.(string)
		case stepKeySuccess:
			s.Success, _ = v.(bool)
		case stepKeyNote:
			s.Note, _ = v.(string)
		default:
			if s.Extra == nil {
				s.Extra = map[string]any{}
			}
			s.Extra[k] = v
		}
	}
	return nil
}

// ListResult is the payload of a list operation.
type ListResult struct {
	Devices []DeviceDescriptor `json:"devices"`
}

// InfoResult is the payload of an info operation.
type InfoResult struct {
	Info DeviceInfo `json:"info"`
}

// DependencyResult is the payload of a dependency check.
type DependencyResult struct {
	Available bool   `json:"dependencies_ok"`
	Tool      string `json:"tool"`
}

// BypassResult is the payload of a bypass probe run.
type BypassResult struct {
	Attempted    bool          `json:"bypass_attempted"`
	MethodsTried []StepOutcome `json:"methods_tried"`
	Success      bool          `json:"success"`
	Notes        []string      `json:"notes"`
}

// ExtractResult is the payload of an extraction run.
type ExtractResult struct {
	OutputDir      string   `json:"output_dir"`
	ExtractedItems []string `json:"extracted_items"`
	Errors         []string `json:"errors"`
}

// OperationReport is the uniform result of every operation. Exactly one of
// the embedded payloads is set, and its fields are serialized inline.
type OperationReport struct {
	Operation Operation   `json:"operation"`
	DeviceID  string      `json:"device_id,omitempty"`
	Platform  PlatformTag `json:"platform"`

	*ListResult
	*InfoResult
	*DependencyResult
	*BypassResult
	*ExtractResult
}

func (r *OperationReport) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func UnmarshalReport(data []byte) (*OperationReport, error) {
	report := &OperationReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, err
	}
	return report, nil
}
