package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/spance/forensic-go/constants"
	"github.com/spance/forensic-go/forensic"
	"github.com/spance/forensic-go/forensic/audit"
	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/forensic/executor"
	"github.com/spance/forensic-go/utils"
)

// Config holds all the configuration values from command line arguments
type Config struct {
	Platform  string `json:"platform"`
	Action    string `json:"action"`
	DeviceID  string `json:"device_id"`
	OutputDir string `json:"output_dir"`
	CheckDeps bool   `json:"check_deps"`
	AuditLog  string `json:"audit_log"`
	Debug     bool   `json:"debug"`
}

var errDependenciesMissing = errors.New("dependencies are missing")

var actions = []string{
	constants.ActionList,
	constants.ActionInfo,
	constants.ActionBypass,
	constants.ActionExtract,
}

var rootCmd = &cobra.Command{
	Use:   "forensic",
	Short: "Mobile forensic toolkit for Android and iOS devices",
	Long: `forensic drives the platform tools already installed on this host
(adb for Android, libimobiledevice for iOS) and reports their results as JSON.`,
	Example: `  # List Android devices
  forensic --platform android --action list

  # Get device info
  forensic --platform android --action info --device <device_id>

  # Run lock screen probes
  forensic --platform android --action bypass --device <device_id>

  # Extract data
  forensic --platform ios --action extract --device <udid> --output ./forensic_data

  # Check that the platform tools are installed
  forensic --platform ios --check-deps`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: validateArgs,
	RunE:              run,
}

var config = &Config{}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.Platform, "platform",
		getEnv("FORENSIC_PLATFORM", ""),
		"Target platform (android or ios)")

	rootCmd.PersistentFlags().StringVar(&config.Action, "action", "",
		fmt.Sprintf("Action to perform (%s)", strings.Join(actions, ", ")))

	rootCmd.PersistentFlags().StringVarP(&config.DeviceID, "device", "d",
		getEnv("FORENSIC_DEVICE_ID", ""),
		"Device ID (required for info, bypass, extract)")

	rootCmd.PersistentFlags().StringVarP(&config.OutputDir, "output", "o",
		getEnv("FORENSIC_OUTPUT_DIR", constants.DefaultOutputDir),
		"Output directory for extracted data")

	rootCmd.PersistentFlags().BoolVar(&config.CheckDeps, "check-deps", false,
		"Check if required dependencies are installed")

	rootCmd.PersistentFlags().StringVar(&config.AuditLog, "audit-log",
		getEnv("FORENSIC_AUDIT_LOG", ""),
		"Append an RFC 5424 record of every tool invocation to this file")

	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false,
		"Enable debug mode (default: false)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDependenciesMissing) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if _, err := definitions.ParsePlatform(config.Platform); err != nil {
		return fmt.Errorf("invalid platform option: %q. Must be 'android' or 'ios'", config.Platform)
	}
	if !config.CheckDeps && config.Action == "" {
		return errors.New("--action is required unless --check-deps is specified")
	}
	if config.Action != "" && !lo.Contains(actions, config.Action) {
		return fmt.Errorf("invalid action: %s. Must be one of: %s", config.Action, strings.Join(actions, ", "))
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", utils.JsonString(config)).Msg("Configuration")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	recorder, closeAudit, err := openAuditLog(config.AuditLog)
	if err != nil {
		return err
	}
	defer closeAudit()

	platform, _ := definitions.ParsePlatform(config.Platform)
	backend, err := forensic.CreateBackend(platform, executor.NewExecInvoker(recorder))
	if err != nil {
		return err
	}

	if config.CheckDeps {
		return checkDependencies(ctx, out, backend)
	}

	req := forensic.Request{
		Operation: definitions.Operation(config.Action),
		DeviceID:  config.DeviceID,
		OutputDir: config.OutputDir,
	}
	return runAction(ctx, out, backend, req)
}

func openAuditLog(path string) (audit.Recorder, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("closing audit log failed")
		}
	}
	return audit.NewSyslogRecorder(constants.AppName, f), closeFn, nil
}

func checkDependencies(ctx context.Context, out io.Writer, backend forensic.Backend) error {
	name := strings.ToUpper(backend.Platform().String())
	if backend.CheckDependencies(ctx) {
		fmt.Fprintf(out, "✓ %s dependencies are available\n", name)
		return nil
	}
	fmt.Fprintf(out, "✗ %s dependencies are missing\n", name)
	for _, hint := range constants.InstallHints[backend.Platform().String()] {
		fmt.Fprintf(out, "  %s\n", hint)
	}
	return errDependenciesMissing
}

func runAction(ctx context.Context, out io.Writer, backend forensic.Backend, req forensic.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	name := strings.ToUpper(backend.Platform().String())

	switch req.Operation {
	case definitions.OpList:
		fmt.Fprintf(out, "Scanning for %s devices...\n", name)
	case definitions.OpInfo:
		fmt.Fprintf(out, "Getting device information for %s...\n", req.DeviceID)
	case definitions.OpBypass:
		fmt.Fprintf(out, "Attempting lockscreen bypass on %s...\n", req.DeviceID)
		fmt.Fprintln(out, constants.AuthorizedUseWarning)
		fmt.Fprintln(out)
	case definitions.OpExtract:
		fmt.Fprintf(out, "Extracting data from %s...\n", req.DeviceID)
		fmt.Fprintf(out, "Output directory: %s\n", req.OutputDir)
	}

	report, err := forensic.Run(ctx, backend, req)
	if err != nil {
		return err
	}

	switch {
	case report.ListResult != nil:
		printDevices(ctx, out, backend, report.Devices)
		return nil
	case report.InfoResult != nil:
		fmt.Fprintln(out, "\nDevice Information:")
		return utils.WriteJsonIndent(out, report.Info)
	case report.BypassResult != nil:
		fmt.Fprintln(out, "\nBypass Results:")
		return utils.WriteJsonIndent(out, report)
	case report.ExtractResult != nil:
		fmt.Fprintln(out, "\nExtraction Results:")
		if err := utils.WriteJsonIndent(out, report); err != nil {
			return err
		}
		if len(report.ExtractedItems) > 0 {
			fmt.Fprintf(out, "\nExtracted %d items to %s\n", len(report.ExtractedItems), report.OutputDir)
		}
	}
	return nil
}

func printDevices(ctx context.Context, out io.Writer, backend forensic.Backend, devices []definitions.DeviceDescriptor) {
	if len(devices) == 0 {
		fmt.Fprintln(out, "No devices found")
		if !backend.CheckDependencies(ctx) {
			fmt.Fprintf(out, "Note: %s tools may not be installed\n", strings.ToUpper(backend.Platform().String()))
		}
		return
	}

	fmt.Fprintf(out, "\nFound %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Fprintf(out, "  ID: %s\n", d.ID)
		fmt.Fprintf(out, "  Status: %s\n", d.Status)
		fmt.Fprintf(out, "  Platform: %s\n", d.Platform)
		if d.Model != "" {
			fmt.Fprintf(out, "  Model: %s\n", d.Model)
		}
		fmt.Fprintln(out)
	}
}
