package ios

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spance/forensic-go/constants"
	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/executor"
	"github.com/spance/forensic-go/forensic/helper"
)

const (
	ideviceIDPath        = "idevice_id"
	ideviceInfoPath      = "ideviceinfo"
	idevicePairPath      = "idevicepair"
	ideviceInstallerPath = "ideviceinstaller"
	ideviceSyslogPath    = "idevicesyslog"
)

// infoKeys is the DeviceInfo allow-list; keys are reported lower-cased.
var infoKeys = []string{
	"DeviceName",
	"ProductType",
	"ProductVersion",
	"BuildVersion",
	"UniqueDeviceID",
}

func udidArgs(args ...string) []string {
	return append([]string{"-u", "{{device_id}}"}, args...)
}

var (
	dependencyCmd = executor.CommandTemplate{
		Program: ideviceInfoPath,
		Args:    []string{"--version"},
		Timeout: constants.DependencyCheckTimeoutSeconds * time.Second,
	}

	listDevicesCmd = executor.CommandTemplate{
		Program: ideviceIDPath,
		Args:    []string{"-l"},
		Timeout: 10 * time.Second,
	}

	deviceInfoCmd = executor.CommandTemplate{
		Program: ideviceInfoPath,
		Args:    udidArgs(),
		Timeout: 10 * time.Second,
	}
)

var extractionSteps = []executor.ExtractionStep{
	{
		FileName: "device_info.txt",
		Command:  deviceInfoCmd,
	},
	{
		FileName: "installed_apps.txt",
		Command: executor.CommandTemplate{
			Program: ideviceInstallerPath,
			Args:    udidArgs("-l"),
			Timeout: 15 * time.Second,
		},
	},
	{
		FileName: "syslog.txt",
		Command: executor.CommandTemplate{
			Program: ideviceSyslogPath,
			Args:    udidArgs(),
			Timeout: 5 * time.Second,
		},
		Streaming: true,
	},
}

// ExtractionFiles lists every artifact name ExtractData can produce, in order.
func ExtractionFiles() []string {
	files := make([]string, len(extractionSteps))
	for i, step := range extractionSteps {
		files[i] = step.FileName
	}
	return files
}

// IOSDevice drives iOS devices through the libimobiledevice tools on PATH.
type IOSDevice struct {
	invoker executor.Invoker
}

func NewIOSDevice(invoker executor.Invoker) *IOSDevice {
	return &IOSDevice{invoker: invoker}
}

func (r *IOSDevice) Platform() definitions.PlatformTag {
	return definitions.IOSPlatform
}

func (r *IOSDevice) ToolName() string {
	return "libimobiledevice"
}

func (r *IOSDevice) CheckDependencies(ctx context.Context) bool {
	result := dependencyCmd.Run(ctx, r.invoker, nil)
	if !result.Succeeded() {
		log.Debug().Err(result.Err()).Msg("[CheckDependencies] libimobiledevice unavailable")
		return false
	}
	return true
}

func (r *IOSDevice) ListDevices(ctx context.Context) []definitions.DeviceDescriptor {
	result := listDevicesCmd.Run(ctx, r.invoker, nil)
	if !result.Succeeded() {
		log.Debug().Err(result.Err()).Msg("[ListDevices] run cmd failed")
		return []definitions.DeviceDescriptor{}
	}

	devices := []definitions.DeviceDescriptor{}
	for _, udid := range helper.SplitLines(result.Stdout) {
		devices = append(devices, definitions.DeviceDescriptor{
			ID:       udid,
			Status:   "connected",
			Platform: definitions.IOSPlatform,
		})
	}
	return devices
}

func (r *IOSDevice) GetDeviceInfo(ctx context.Context, deviceID string) definitions.DeviceInfo {
	info := definitions.NewDeviceInfo(deviceID, definitions.IOSPlatform)

	result := deviceInfoCmd.Run(ctx, r.invoker, executor.Vars{executor.VarDeviceID: deviceID})
	if !result.Succeeded() {
		log.Debug().Err(result.Err()).Msg("[GetDeviceInfo] ideviceinfo failed")
		return info
	}

	for k, v := range helper.FilterAllowed(helper.ParseInfoOutput(result.Stdout), infoKeys) {
		info[k] = v
	}
	return info
}

func (r *IOSDevice) ProbeBypass(ctx context.Context, deviceID string) []definitions.StepOutcome {
	return executor.RunProbes(ctx, r.invoker, probeSteps, executor.Vars{executor.VarDeviceID: deviceID})
}

func (r *IOSDevice) ExtractData(ctx context.Context, deviceID, outputDir string) ([]string, []string) {
	return executor.RunExtractions(ctx, r.invoker, extractionSteps, executor.Vars{executor.VarDeviceID: deviceID}, outputDir)
}
