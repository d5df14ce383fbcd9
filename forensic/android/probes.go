package android

import (
	"fmt"
	"strings"
	"time"

	"github.com/spance/forensic-go/forensic/executor"
)

var lockFiles = []string{
	"/data/system/gesture.key",
	"/data/system/password.key",
	"/data/system/locksettings.db",
}

var (
	lockStateCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    serialArgs("shell", "dumpsys", "window"),
		Timeout: 10 * time.Second,
	}

	rootCheckCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    serialArgs("shell", "su", "-c", "id"),
		Timeout: 5 * time.Second,
	}

	wakeCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    serialArgs("shell", "input", "keyevent", "KEYCODE_WAKEUP"),
		Timeout: 5 * time.Second,
	}

	swipeCmd = executor.CommandTemplate{
		Program: adbPath,
		Args:    serialArgs("shell", "input", "swipe", "300", "1000", "300", "300"),
		Timeout: 5 * time.Second,
	}
)

// probeSteps is the fixed Android probe order.
var probeSteps = []executor.ProbeStep{
	{
		Name:        "Check Unlock Status",
		Commands:    []executor.CommandTemplate{lockStateCmd},
		FailureNote: "Unable to check lock status",
		Evaluate: func(results []*executor.Result) (bool, string) {
			state := results[0]
			if !state.Succeeded() {
				return false, fmt.Sprintf("Unable to check lock status: %v", state.Err())
			}
			if isUnlocked(state.Stdout) {
				return true, "Device appears to be unlocked"
			}
			return false, "Lock screen appears to be active"
		},
	},
	{
		Name:        "Lock File Removal",
		Commands:    []executor.CommandTemplate{rootCheckCmd},
		FailureNote: "Requires root access - check device root status",
		Evaluate: func(results []*executor.Result) (bool, string) {
			id := results[0]
			if id.Succeeded() && strings.Contains(id.Stdout, "uid=0") {
				return false, "Root access available - lock files can be removed manually"
			}
			return false, "Requires root access - check device root status"
		},
		Extra: map[string]any{
			"files_to_remove": lockFiles,
		},
	},
	{
		Name:        "ADB Input Commands",
		Commands:    []executor.CommandTemplate{wakeCmd, swipeCmd, lockStateCmd},
		FailureNote: "ADB input commands failed",
		Evaluate: func(results []*executor.Result) (bool, string) {
			for _, gesture := range results[:2] {
				if !gesture.Succeeded() {
					return false, fmt.Sprintf("ADB input commands failed: %v", gesture.Err())
				}
			}
			if results[2].Succeeded() && isUnlocked(results[2].Stdout) {
				return true, "Device unlocked after wake and swipe gestures"
			}
			return false, "Attempted wake and swipe gestures"
		},
	},
}
