package forensic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/spance/forensic-go/constants"
	"github.com/spance/forensic-go/forensic/definitions"
)

// Request names one operation and its inputs.
type Request struct {
	Operation definitions.Operation
	DeviceID  string
	OutputDir string
}

// Validate reports an input error for an unknown operation or a missing
// device id.
func (r Request) Validate() error {
	switch r.Operation {
	case definitions.OpList, definitions.OpCheckDeps:
	case definitions.OpInfo, definitions.OpBypass, definitions.OpExtract:
		if strings.TrimSpace(r.DeviceID) == "" {
			return fmt.Errorf("%w for %s action", definitions.ErrMissingDeviceID, r.Operation)
		}
	default:
		return fmt.Errorf("%w: %q", definitions.ErrUnknownOperation, r.Operation)
	}
	return nil
}

// Run validates req and dispatches it to backend. The only errors it returns
// are input errors, raised before the backend is touched.
func Run(ctx context.Context, backend Backend, req Request) (*definitions.OperationReport, error) {
	if err := req.Validate(); err != nil {
		log.Error().Err(err).Str("operation", string(req.Operation)).Msg("[Run] invalid request")
		return nil, err
	}

	report := &definitions.OperationReport{
		Operation: req.Operation,
		Platform:  backend.Platform(),
	}
	if req.Operation.RequiresDevice() {
		report.DeviceID = req.DeviceID
	}

	log.Debug().
		Str("operation", string(req.Operation)).
		Str("platform", backend.Platform().String()).
		Str("device", req.DeviceID).
		Msg("[Run] dispatch")

	switch req.Operation {
	case definitions.OpCheckDeps:
		report.DependencyResult = &definitions.DependencyResult{
			Available: backend.CheckDependencies(ctx),
			Tool:      backend.ToolName(),
		}
	case definitions.OpList:
		devices := backend.ListDevices(ctx)
		if devices == nil {
			devices = []definitions.DeviceDescriptor{}
		}
		report.ListResult = &definitions.ListResult{Devices: devices}
	case definitions.OpInfo:
		report.InfoResult = &definitions.InfoResult{Info: backend.GetDeviceInfo(ctx, req.DeviceID)}
	case definitions.OpBypass:
		report.BypassResult = AggregateBypass(backend.ProbeBypass(ctx, req.DeviceID))
	case definitions.OpExtract:
		outputDir := req.OutputDir
		if outputDir == "" {
			outputDir = constants.DefaultOutputDir
		}
		extracted, errs := backend.ExtractData(ctx, req.DeviceID, outputDir)
		report.ExtractResult = AggregateExtract(outputDir, extracted, errs)
	}
	return report, nil
}
