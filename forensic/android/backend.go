package android

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spance/forensic-go/constants"
	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/executor"
)

const (
	adbPath = "adb"
)

func serialArgs(args ...string) []string {
	return append([]string{"-s", "{{device_id}}"}, args...)
}

var (
	dependencyCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    []string{"version"},
		Timeout: constants.DependencyCheckTimeoutSeconds * time.Second,
	}

	listDevicesCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    []string{"devices", "-l"},
		Timeout: 10 * time.Second,
	}
)

// infoProperties maps each allow-listed DeviceInfo key to its system property.
var infoProperties = []struct {
	Key      string
	Property string
}{
	{"model", "ro.product.model"},
	{"manufacturer", "ro.product.manufacturer"},
	{"android_version", "ro.build.version.release"},
	{"sdk_version", "ro.build.version.sdk"},
	{"serial", "ro.serialno"},
}

func getpropCmd(property string) executor.CommandTemplate {
	return executor.CommandTemplate{
		Program: adbPath,
		Args:    serialArgs("shell", "getprop", property),
		Timeout: 5 * time.Second,
	}
}

var extractionSteps = []executor.ExtractionStep{
	{
		FileName: "device_info.txt",
		Command: executor.CommandTemplate{
			Program: adbPath,
			Args:    serialArgs("shell", "getprop"),
			Timeout: 10 * time.Second,
		},
	},
	{
		FileName: "installed_packages.txt",
		Command: executor.CommandTemplate{
			Program: adbPath,
			Args:    serialArgs("shell", "pm", "list", "packages"),
			Timeout: 15 * time.Second,
		},
	},
	{
		FileName: "logcat.txt",
		Command: executor.CommandTemplate{
			Program: adbPath,
			Args:    serialArgs("logcat", "-d"),
			Timeout: 15 * time.Second,
		},
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

// ADBDevice drives Android devices through the adb binary on PATH.
type ADBDevice struct {
	invoker executor.Invoker
}

func NewADBDevice(invoker executor.Invoker) *ADBDevice {
	return &ADBDevice{invoker: invoker}
}

func (r *ADBDevice) Platform() definitions.PlatformTag {
	return definitions.AndroidPlatform
}

func (r *ADBDevice) ToolName() string {
	return adbPath
}

func (r *ADBDevice) CheckDependencies(ctx context.Context) bool {
	result := dependencyCmd.Run(ctx, r.invoker, nil)
	if !result.Succeeded() {
		log.Debug().Err(result.Err()).Msg("[CheckDependencies] adb unavailable")
		return false
	}
	return true
}

func (r *ADBDevice) ListDevices(ctx context.Context) []definitions.DeviceDescriptor {
	result := listDevicesCmd.Run(ctx, r.invoker, nil)
	if !result.Succeeded() {
		log.Debug().Err(result.Err()).Msg("[ListDevices] run cmd failed")
		return []definitions.DeviceDescriptor{}
	}
	return parseDeviceList(result.Stdout)
}

func (r *ADBDevice) GetDeviceInfo(ctx context.Context, deviceID string) definitions.DeviceInfo {
	info := definitions.NewDeviceInfo(deviceID, definitions.AndroidPlatform)
	vars := executor.Vars{executor.VarDeviceID: deviceID}

	for _, prop := range infoProperties {
		result := getpropCmd(prop.Property).Run(ctx, r.invoker, vars)
		if !result.Succeeded() {
			log.Debug().Err(result.Err()).Str("property", prop.Property).Msg("[GetDeviceInfo] getprop failed")
			continue
		}
		if value := parsePropertyValue(result.Stdout); value != "" {
			info[prop.Key] = value
		}
	}
	return info
}

func (r *ADBDevice) ProbeBypass(ctx context.Context, deviceID string) []definitions.StepOutcome {
	return executor.RunProbes(ctx, r.invoker, probeSteps, executor.Vars{executor.VarDeviceID: deviceID})
}

func (r *ADBDevice) ExtractData(ctx context.Context, deviceID, outputDir string) ([]string, []string) {
	return executor.RunExtractions(ctx, r.invoker, extractionSteps, executor.Vars{executor.VarDeviceID: deviceID}, outputDir)
}
