package android

import (
	"strings"

	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/helper"
)

const unlockedMarker = "mDreamingLockscreen=false"

// parseDeviceList reads `adb devices -l` output:
//
//	List of devices attached
//	R58M12ABCDE    device usb:1-1 product:beyond1 model:SM_G973F device:beyond1
//	emulator-5554  offline
func parseDeviceList(output string) []definitions.DeviceDescriptor {
	devices := []definitions.DeviceDescriptor{}
	for _, line := range helper.SplitLines(output) {
		// header and daemon start-up chatter
		if strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceDescriptor{
			ID:       parts[0],
			Status:   parts[1],
			Platform: definitions.AndroidPlatform,
			Model:    model,
		})
	}
	return devices
}

// parsePropertyValue returns the single value printed by `getprop <name>`.
func parsePropertyValue(output string) string {
	lines := helper.SplitLines(output)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func isUnlocked(dumpsysWindow string) bool {
	return strings.Contains(dumpsysWindow, unlockedMarker)
}
