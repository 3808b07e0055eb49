package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/hostscan/internal/classify"
	"github.com/breeze-rmm/hostscan/internal/collectors"
	"github.com/breeze-rmm/hostscan/internal/config"
	"github.com/breeze-rmm/hostscan/internal/logging"
	"github.com/breeze-rmm/hostscan/internal/report"
)

var (
	version = "0.1.0"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "breeze-hostscan",
	Short: "Breeze HostScan",
	Long: `Breeze HostScan - one-shot, read-only host security diagnostic for
Windows, macOS, and Linux. Enumerates processes, network connections, and
interface counters, then prints a report flagging suspicious activity.

Elevated privileges are not required, but yield more complete per-connection
ownership data.`,
	Run: func(cmd *cobra.Command, args []string) {
		runScan(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Breeze HostScan v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/breeze/hostscan.yaml)")

	rootCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	rootCmd.Flags().Bool("json", false, "emit the scan as JSON instead of text")
	rootCmd.Flags().Uint64("threshold", 0, "high-usage threshold in bytes (default 10000000)")
	rootCmd.Flags().StringSlice("suspect", nil, "extra suspicious-name substrings (repeatable)")
	rootCmd.Flags().String("signatures", "", "YAML file with extra denylist signatures")
	rootCmd.Flags().Int("max-conns", 0, "max connections shown per process group (default 5)")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().String("log-format", "", "log format: text or json")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cmd, cfg)

	logging.Init(cfg.LogFormat, cfg.LogLevel, nil)
	log := logging.L("hostscan")

	for _, err := range cfg.Validate() {
		log.Warn("config issue", logging.KeyError, err)
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load signatures: %v\n", err)
		os.Exit(1)
	}

	snapshot, err := collectors.New().Collect()
	if err != nil {
		var ce *collectors.CollectionError
		if errors.As(err, &ce) {
			fmt.Fprintf(os.Stderr, "Scan failed: %s enumeration unavailable: %v\n", ce.Stage, ce.Err)
		} else {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		}
		os.Exit(1)
	}

	out, closeOut, useColor, err := openOutput(cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open output: %v\n", err)
		os.Exit(1)
	}
	defer closeOut()

	reporter := report.NewReporter(classifier, cfg.MaxConnsPerProcess, useColor)
	if cfg.JSONOutput {
		err = reporter.RenderJSON(out, snapshot)
	} else {
		err = reporter.Render(out, snapshot)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets explicit flags override file and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.OutputPath, _ = flags.GetString("output")
	}
	if flags.Changed("json") {
		cfg.JSONOutput, _ = flags.GetBool("json")
	}
	if flags.Changed("threshold") {
		cfg.HighUsageThresholdBytes, _ = flags.GetUint64("threshold")
	}
	if flags.Changed("suspect") {
		extra, _ := flags.GetStringSlice("suspect")
		cfg.ExtraSuspiciousNames = append(cfg.ExtraSuspiciousNames, extra...)
	}
	if flags.Changed("signatures") {
		cfg.SignatureFile, _ = flags.GetString("signatures")
	}
	if flags.Changed("max-conns") {
		cfg.MaxConnsPerProcess, _ = flags.GetInt("max-conns")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
}

func buildClassifier(cfg *config.Config) (*classify.Classifier, error) {
	classifier := classify.NewClassifier(cfg.HighUsageThresholdBytes)
	classifier.Denylist.Extend(cfg.ExtraSuspiciousNames)
	if cfg.SignatureFile != "" {
		if err := classifier.Denylist.LoadSignatureFile(cfg.SignatureFile); err != nil {
			return nil, err
		}
	}
	return classifier, nil
}

// openOutput resolves the report destination. Color is only enabled when
// writing straight to an interactive stdout.
func openOutput(path string) (io.Writer, func(), bool, error) {
	if path == "" {
		return os.Stdout, func() {}, isTerminal(os.Stdout), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, false, err
	}
	return f, func() { f.Close() }, false, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
