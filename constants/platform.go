package constants

const (
	Android = "android"
	IOS     = "ios"
)

const (
	ActionList      = "list"
	ActionInfo      = "info"
	ActionBypass    = "bypass"
	ActionExtract   = "extract"
	ActionCheckDeps = "check-deps"
)

// DefaultOutputDir is where extracted artifacts land when no directory is given.
const DefaultOutputDir = "./forensic_output"

// DependencyCheckTimeoutSeconds bounds every toolchain probe.
const DependencyCheckTimeoutSeconds = 5

const AppName = "forensic-go"
