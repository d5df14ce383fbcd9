package ios

import (
	"time"

	"github.com/spance/forensic-go/forensic/executor"
)

var pairValidateCmd = executor.CommandTemplate{
	Program: idevicePairPath,
	Args:    udidArgs("validate"),
	Timeout: 10 * time.Second,
}

// probeSteps is the fixed iOS probe order.
var probeSteps = []executor.ProbeStep{
	{
		Name:        "Check Pair Status",
		Commands:    []executor.CommandTemplate{pairValidateCmd},
		FailureNote: "Unable to check pair status",
		Evaluate: func(results []*executor.Result) (bool, string) {
			if results[0].Succeeded() {
				return true, "Device is paired and may allow access"
			}
			return false, "Device requires pairing"
		},
	},
	{
		Name: "Backup Extraction",
		Note: "Backup extraction may be possible if device is paired",
		Extra: map[string]any{
			"command": "idevicebackup2 backup --udid {{device_id}} <backup_dir>",
		},
	},
	{
		Name: "Emergency Interface Check",
		Note: "Manual check: Emergency call interface may provide limited access",
	},
}
