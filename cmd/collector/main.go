package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/config"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/engine"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/report"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/scan"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// ANSI colors
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[38;5;245m"
	colorCyan  = "\033[36m"
)

var (
	version = "2.0.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coletor",
		Short: "Coletor de Arquivos - collect files by extension into a destination tree",
		Long: `Searches one or more source roots for files matching a set of extensions,
reports them with size and duplicate metadata, and copies them into a
destination folder preserving the relative directory structure.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(collectCmd())
	rootCmd.AddCommand(drivesCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger initializes the zap logger based on the verbose flag
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	return err
}

// buildScanRequest assembles the scan request from flags, arguments and
// saved preferences
func buildScanRequest(cfg *config.Config, args []string, extText string, followSymlinks bool, maxSize string) models.ScanRequest {
	roots := args
	if len(roots) == 0 {
		roots = cfg.Roots
	}
	if extText == "" {
		extText = cfg.Extensions
	}
	if maxSize == "" {
		maxSize = cfg.MaxSize
	}
	var maxBytes int64
	if maxSize != "" {
		maxBytes = fsutil.ParseSize(maxSize)
	}
	return models.ScanRequest{
		Roots:          fsutil.NormalizeRoots(roots),
		Extensions:     scan.ParseExtensions(extText),
		FollowSymlinks: followSymlinks || cfg.FollowSymlinks,
		MaxFileSize:    maxBytes,
	}
}

// runScan starts a scan on the coordinator and blocks until it ends,
// cancelling on SIGINT/SIGTERM
func runScan(coord *engine.Coordinator, req models.ScanRequest) error {
	errCh, err := coord.StartScan(req)
	if err != nil {
		return err
	}
	return awaitOperation(coord, errCh)
}

// awaitOperation waits for a running operation, forwarding interrupt
// signals as a cooperative cancel
func awaitOperation(coord *engine.Coordinator, errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			fmt.Printf("\n  %sCancelling...%s\n", colorGray, colorReset)
			coord.Cancel()
		case err := <-errCh:
			return err
		}
	}
}

// printResults prints the result set table and the duplicate groups
func printResults(coord *engine.Coordinator) {
	records := coord.Records()
	if len(records) == 0 {
		fmt.Printf("\n  %sNo files found.%s\n", colorGray, colorReset)
		return
	}

	fmt.Printf("\n  %s%sResults (%d)%s\n\n", colorBold, colorCyan, len(records), colorReset)
	for _, rec := range records {
		dup := " "
		if rec.Duplicate {
			dup = colorRed + "D" + colorReset
		}
		fmt.Printf("  %s %-40s %10s  %s%s%s\n",
			dup, rec.Name, fsutil.FormatSize(rec.Size), colorGray, rec.AbsPath, colorReset)
	}

	groups := coord.Groups()
	if len(groups) > 0 {
		fmt.Printf("\n  %s%sDuplicates (%d groups)%s\n\n", colorBold, colorRed, len(groups), colorReset)
		for _, g := range groups {
			fmt.Printf("  %s (%s) x%d\n", g.Name, g.SizeDisplay, g.Count)
			for _, rec := range g.Records {
				fmt.Printf("    %s%s%s\n", colorGray, rec.AbsPath, colorReset)
			}
		}
	}
}

// printLog prints the buffered operation log
func printLog(coord *engine.Coordinator) {
	entries := coord.LogEntries()
	if len(entries) == 0 {
		return
	}
	fmt.Printf("\n  %s%sLog%s\n\n", colorBold, colorCyan, colorReset)
	for _, e := range entries {
		color := colorGray
		switch e.Level {
		case models.SeverityWarning:
			color = colorRed
		case models.SeverityError:
			color = colorRed
		}
		fmt.Printf("  %s%s %s%s\n", color, e.Time.Format("15:04:05"), e.Message, colorReset)
	}
}

// writeReport writes a report of the coordinator's state when a format was
// requested
func writeReport(coord *engine.Coordinator, req models.ScanRequest, format, outputFile string) error {
	if format == "" {
		return nil
	}
	summary := &report.Summary{
		Roots:      req.Roots,
		Extensions: req.Extensions,
		Records:    coord.Records(),
		Groups:     coord.Groups(),
		Log:        coord.LogEntries(),
	}
	path, err := report.NewGenerator(logger).Generate(summary, format, outputFile)
	if err != nil {
		return err
	}
	fmt.Printf("\n  %sReport written to %s%s\n", colorGray, path, colorReset)
	return nil
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		extText        string
		followSymlinks bool
		maxSize        string
		reportFormat   string
		reportOutput   string
	)

	cmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Search source roots for files matching the configured extensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			req := buildScanRequest(cfg, args, extText, followSymlinks, maxSize)
			coord := engine.NewCoordinator(logger, cfg.LogCapacity)

			if err := runScan(coord, req); err != nil {
				return err
			}

			printResults(coord)
			printLog(coord)
			return writeReport(coord, req, reportFormat, reportOutput)
		},
	}

	cmd.Flags().StringVarP(&extText, "extensions", "e", "", `Extensions to search for, e.g. "rar, zip" (default: saved preference)`)
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symlinked directories during the walk")
	cmd.Flags().StringVar(&maxSize, "max-size", "", `Skip files larger than this, e.g. "650K", "1G"`)
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Write a report in this format: json, txt, csv, md")
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report output file (default: timestamped name)")

	return cmd
}

// collectCmd creates the collect command (scan then copy)
func collectCmd() *cobra.Command {
	var (
		extText        string
		followSymlinks bool
		maxSize        string
		dest           string
		overwrite      bool
		dryRun         bool
		duplicatesOnly bool
		reportFormat   string
		reportOutput   string
	)

	cmd := &cobra.Command{
		Use:   "collect [roots...]",
		Short: "Scan and copy matching files into the destination tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			if dest == "" {
				dest = cfg.Destination
			}
			if dest == "" {
				return engine.ErrNoDestination
			}
			effOverwrite := overwrite || cfg.Overwrite
			effDryRun := dryRun || cfg.DryRun
			// A dry run must not touch the filesystem, the destination
			// root included.
			if !effDryRun {
				if err := os.MkdirAll(dest, 0o755); err != nil {
					return fmt.Errorf("destination error: %w", err)
				}
			}

			req := buildScanRequest(cfg, args, extText, followSymlinks, maxSize)
			coord := engine.NewCoordinator(logger, cfg.LogCapacity)

			if err := runScan(coord, req); err != nil {
				return err
			}
			printResults(coord)

			var errCh <-chan error
			if duplicatesOnly {
				coord.ClearSelection()
				for _, rec := range coord.Records() {
					if rec.Duplicate {
						coord.SetSelected(rec.AbsPath, true)
					}
				}
				errCh, err = coord.CopySelected(dest, effOverwrite, effDryRun)
			} else {
				errCh, err = coord.CopyAll(dest, effOverwrite, effDryRun)
			}
			if err != nil {
				if err == engine.ErrNoRecords || err == engine.ErrNoSelection {
					fmt.Printf("  %sNothing to copy.%s\n", colorGray, colorReset)
					return nil
				}
				return err
			}
			if err := awaitOperation(coord, errCh); err != nil {
				printLog(coord)
				return err
			}

			printLog(coord)
			fmt.Printf("\n  %s%s✓ Done%s\n", colorBold, colorGreen, colorReset)
			return writeReport(coord, req, reportFormat, reportOutput)
		},
	}

	cmd.Flags().StringVarP(&extText, "extensions", "e", "", `Extensions to search for, e.g. "rar, zip" (default: saved preference)`)
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symlinked directories during the walk")
	cmd.Flags().StringVar(&maxSize, "max-size", "", `Skip files larger than this, e.g. "650K", "1G"`)
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination folder (default: saved preference)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite files that already exist at the destination")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate the copy without touching the filesystem")
	cmd.Flags().BoolVar(&duplicatesOnly, "duplicates", false, "Copy only files flagged as duplicates")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Write a report in this format: json, txt, csv, md")
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report output file (default: timestamped name)")

	return cmd
}

// drivesCmd creates the drives command
func drivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List filesystem roots available for scanning",
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range fsutil.ListDrives() {
				fmt.Println(d)
			}
		},
	}
}

// configCmd creates the config command
func configCmd() *cobra.Command {
	var (
		dest           string
		extText        string
		roots          []string
		overwrite      bool
		dryRun         bool
		followSymlinks bool
		maxSize        string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("dest") {
				cfg.Destination = dest
				changed = true
			}
			if cmd.Flags().Changed("extensions") {
				cfg.Extensions = scan.FormatExtensions(scan.ParseExtensions(extText))
				changed = true
			}
			if cmd.Flags().Changed("roots") {
				cfg.Roots = roots
				changed = true
			}
			if cmd.Flags().Changed("overwrite") {
				cfg.Overwrite = overwrite
				changed = true
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = dryRun
				changed = true
			}
			if cmd.Flags().Changed("follow-symlinks") {
				cfg.FollowSymlinks = followSymlinks
				changed = true
			}
			if cmd.Flags().Changed("max-size") {
				cfg.MaxSize = maxSize
				changed = true
			}

			if changed {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("failed to save preferences: %w", err)
				}
				path, _ := config.DefaultPath()
				fmt.Printf("  %sSaved to %s%s\n\n", colorGray, path, colorReset)
			}

			fmt.Printf("  %sDestination:%s      %s\n", colorGray, colorReset, cfg.Destination)
			fmt.Printf("  %sExtensions:%s       %s\n", colorGray, colorReset, cfg.Extensions)
			fmt.Printf("  %sRoots:%s            %v\n", colorGray, colorReset, cfg.Roots)
			fmt.Printf("  %sOverwrite:%s        %v\n", colorGray, colorReset, cfg.Overwrite)
			fmt.Printf("  %sDry run:%s          %v\n", colorGray, colorReset, cfg.DryRun)
			fmt.Printf("  %sFollow symlinks:%s  %v\n", colorGray, colorReset, cfg.FollowSymlinks)
			fmt.Printf("  %sMax size:%s         %s\n", colorGray, colorReset, cfg.MaxSize)
			fmt.Printf("  %sLog capacity:%s     %d\n", colorGray, colorReset, cfg.LogCapacity)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination folder")
	cmd.Flags().StringVarP(&extText, "extensions", "e", "", "Extensions to search for")
	cmd.Flags().StringSliceVar(&roots, "roots", nil, "Source roots to search")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite files that already exist at the destination")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate copies without touching the filesystem")
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symlinked directories during the walk")
	cmd.Flags().StringVar(&maxSize, "max-size", "", `Skip files larger than this, e.g. "650K"`)

	return cmd
}
