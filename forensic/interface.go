package forensic

import (
	"context"
	"fmt"

	"github.com/spance/forensic-go/forensic/android"
	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/executor"
	"github.com/spance/forensic-go/forensic/ios"
)

// DeviceProber discovers devices and reads their identity.
type DeviceProber interface {
	CheckDependencies(ctx context.Context) bool
	ListDevices(ctx context.Context) []definitions.DeviceDescriptor
	GetDeviceInfo(ctx context.Context, deviceID string) definitions.DeviceInfo
}

// DeviceExaminer runs the probe and extraction sequences against one device.
type DeviceExaminer interface {
	ProbeBypass(ctx context.Context, deviceID string) []definitions.StepOutcome
	ExtractData(ctx context.Context, deviceID, outputDir string) (extracted, errs []string)
}

// Backend is the full capability set of one platform. None of its methods
// fail: tool problems come back as empty results or failed steps.
type Backend interface {
	DeviceProber
	DeviceExaminer
	Platform() definitions.PlatformTag
	// ToolName names the toolchain for diagnostics.
	ToolName() string
}

func CreateBackend(platform definitions.PlatformTag, invoker executor.Invoker) (Backend, error) {
	switch platform {
	case definitions.AndroidPlatform:
		return android.NewADBDevice(invoker), nil
	case definitions.IOSPlatform:
		return ios.NewIOSDevice(invoker), nil
	default:
		return nil, fmt.Errorf("%w: %q", definitions.ErrUnknownPlatform, platform)
	}
}
