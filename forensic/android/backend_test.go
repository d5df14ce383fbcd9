package android

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samber/lo"

	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/executor"
	"github.com/spance/forensic-go/forensic/executor/executortest"
)

func TestParseDeviceList(t *testing.T) {
	output := `* daemon not running; starting now at tcp:5037
* daemon started successfully
List of devices attached
R58M12ABCDE            device usb:1-1 product:beyond1 model:SM_G973F device:beyond1 transport_id:1
emulator-5554          offline transport_id:2
192.168.1.20:5555      unauthorized

garbage
`
	devices := parseDeviceList(output)
	want := []definitions.DeviceDescriptor{
		{ID: "R58M12ABCDE", Status: "device", Platform: definitions.AndroidPlatform, Model: "SM_G973F"},
		{ID: "emulator-5554", Status: "offline", Platform: definitions.AndroidPlatform},
		{ID: "192.168.1.20:5555", Status: "unauthorized", Platform: definitions.AndroidPlatform},
	}
	if !reflect.DeepEqual(devices, want) {
		t.Errorf("parseDeviceList() =\n%+v\nwant\n%+v", devices, want)
	}

	if got := parseDeviceList("List of devices attached\n\n"); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", got)
	}
}

func TestListDevicesWithoutAdb(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	device := NewADBDevice(executor.NewExecInvoker(nil))
	ctx := context.Background()

	devices := device.ListDevices(ctx)
	if devices == nil || len(devices) != 0 {
		t.Errorf("Expected empty device list without adb, got %#v", devices)
	}
	if device.CheckDependencies(ctx) {
		t.Error("CheckDependencies must be false without adb")
	}
}

func TestGetDeviceInfo(t *testing.T) {
	inv := executortest.New().
		On("adb -s S1 shell getprop ro.product.model", executortest.Completed("Pixel 7\n")).
		On("adb -s S1 shell getprop ro.product.manufacturer", executortest.Completed("Google\r\n")).
		On("adb -s S1 shell getprop ro.build.version.release", executortest.Completed("14\n")).
		On("adb -s S1 shell getprop ro.build.version.sdk", executortest.Completed("\n")).
		On("adb -s S1 shell getprop ro.serialno", executortest.Failed(1, "error: device 'S1' not found"))

	info := NewADBDevice(inv).GetDeviceInfo(context.Background(), "S1")
	want := definitions.DeviceInfo{
		"device_id":       "S1",
		"platform":        "android",
		"model":           "Pixel 7",
		"manufacturer":    "Google",
		"android_version": "14",
	}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("GetDeviceInfo() = %v, want %v", info, want)
	}

	allowed := []string{"device_id", "platform", "model", "manufacturer", "android_version", "sdk_version", "serial"}
	for key := range info {
		if !lo.Contains(allowed, key) {
			t.Errorf("Unexpected key %q in DeviceInfo", key)
		}
	}
}

func TestProbeBypassFixedShape(t *testing.T) {
	device := NewADBDevice(executortest.New())
	first := device.ProbeBypass(context.Background(), "does-not-exist")
	second := device.ProbeBypass(context.Background(), "another-id")

	names := []string{"Check Unlock Status", "Lock File Removal", "ADB Input Commands"}
	for _, outcomes := range [][]definitions.StepOutcome{first, second} {
		if len(outcomes) != len(names) {
			t.Fatalf("Expected %d steps, got %d", len(names), len(outcomes))
		}
		for i, name := range names {
			if outcomes[i].Name != name {
				t.Errorf("Step %d = %q, want %q", i, outcomes[i].Name, name)
			}
			if outcomes[i].Success {
				t.Errorf("Step %q cannot succeed without adb", name)
			}
			if outcomes[i].Note == "" {
				t.Errorf("Step %q should explain its failure", name)
			}
		}
	}
	if !reflect.DeepEqual(first[1].Extra["files_to_remove"], lockFiles) {
		t.Errorf("Lock file step should list lock files, got %v", first[1].Extra)
	}
}

func TestProbeBypassUnlockedDevice(t *testing.T) {
	inv := executortest.New().
		On("adb -s S1 shell dumpsys window", executortest.Completed("  mDreamingLockscreen=false mDreamingSleepToken=null")).
		On("adb -s S1 shell su -c id", executortest.Completed("uid=0(root) gid=0(root)")).
		On("adb -s S1 shell input keyevent KEYCODE_WAKEUP", executortest.Completed("")).
		On("adb -s S1 shell input swipe 300 1000 300 300", executortest.Completed(""))

	outcomes := NewADBDevice(inv).ProbeBypass(context.Background(), "S1")
	if !outcomes[0].Success {
		t.Errorf("Unlock check should succeed, got %+v", outcomes[0])
	}
	if outcomes[1].Success || outcomes[1].Note != "Root access available - lock files can be removed manually" {
		t.Errorf("Lock file step is advisory only, got %+v", outcomes[1])
	}
	if !outcomes[2].Success {
		t.Errorf("Input step should report unlocked device, got %+v", outcomes[2])
	}
}

func TestProbeBypassLockedDevice(t *testing.T) {
	inv := executortest.New().
		On("adb -s S1 shell dumpsys window", executortest.Completed("mDreamingLockscreen=true")).
		On("adb -s S1 shell su -c id", executortest.Failed(127, "su: not found")).
		On("adb -s S1 shell input keyevent KEYCODE_WAKEUP", executortest.Completed("")).
		On("adb -s S1 shell input swipe 300 1000 300 300", executortest.Completed(""))

	outcomes := NewADBDevice(inv).ProbeBypass(context.Background(), "S1")
	for _, o := range outcomes {
		if o.Success {
			t.Errorf("Locked device: step %q should not succeed", o.Name)
		}
	}
	if outcomes[2].Note != "Attempted wake and swipe gestures" {
		t.Errorf("Unexpected input note %q", outcomes[2].Note)
	}
}

func TestExtractData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "case-1")
	inv := executortest.New().
		On("adb -s S1 shell getprop", executortest.Completed("[ro.product.model]: [Pixel 7]\n")).
		On("adb -s S1 shell pm list packages", executortest.Failed(1, "device offline")).
		On("adb -s S1 logcat -d", executortest.Completed("log line\n"))
	device := NewADBDevice(inv)

	first, errs := device.ExtractData(context.Background(), "S1", dir)
	second, _ := device.ExtractData(context.Background(), "S1", dir)

	if !reflect.DeepEqual(first, []string{"device_info.txt", "logcat.txt"}) {
		t.Errorf("Extracted %v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated extraction differs: %v vs %v", first, second)
	}
	if len(errs) != 1 {
		t.Errorf("Expected one error for packages, got %v", errs)
	}
	for _, name := range first {
		if !lo.Contains(ExtractionFiles(), name) {
			t.Errorf("%s is not a known Android artifact", name)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Artifact %s missing: %v", name, err)
		}
	}
}

func TestProbeBypassReportsAreIndependent(t *testing.T) {
	device := NewADBDevice(executortest.New())
	first := device.ProbeBypass(context.Background(), "A")
	first[1].Extra["files_to_remove"].([]string)[0] = "changed"

	second := device.ProbeBypass(context.Background(), "B")
	if !reflect.DeepEqual(second[1].Extra["files_to_remove"], lockFiles) {
		t.Errorf("Editing one report leaked into the next: %v", second[1].Extra["files_to_remove"])
	}
	if lockFiles[0] == "changed" {
		t.Error("Lock file table was modified through a report")
	}
}
