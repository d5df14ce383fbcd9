package definitions

import (
	"fmt"

	"github.com/spance/forensic-go/constants"
)

// PlatformTag selects which backend handles a session.
type PlatformTag string

const (
	AndroidPlatform PlatformTag = constants.Android
	IOSPlatform     PlatformTag = constants.IOS
)

func ParsePlatform(s string) (PlatformTag, error) {
	switch PlatformTag(s) {
	case AndroidPlatform, IOSPlatform:
		return PlatformTag(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}

func (p PlatformTag) String() string {
	return string(p)
}

// DeviceDescriptor is one entry of a device enumeration.
type DeviceDescriptor struct {
	ID       string      `json:"id"`
	Status   string      `json:"status"`
	Platform PlatformTag `json:"platform"`
	Model    string      `json:"model,omitempty"`
}

// Keys every DeviceInfo carries regardless of platform.
const (
	InfoKeyDeviceID = "device_id"
	InfoKeyPlatform = "platform"
)

// DeviceInfo maps allow-listed field names to values reported by the device.
type DeviceInfo map[string]string

func NewDeviceInfo(deviceID string, platform PlatformTag) DeviceInfo {
	return DeviceInfo{
		InfoKeyDeviceID: deviceID,
		InfoKeyPlatform: platform.String(),
	}
}

func (d DeviceInfo) DeviceID() string {
	return d[InfoKeyDeviceID]
}

func (d DeviceInfo) Platform() string {
	return d[InfoKeyPlatform]
}
