package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chartweb/internal/app"
	"chartweb/internal/config"
	"chartweb/internal/fixture"
	"chartweb/internal/server"
)

var (
	configPath string
	verbose    bool
	renderDir  string
	exportFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chartweb",
	Short: "Demographics dashboard and category pie chart editor",
	Long: `chartweb serves two dashboards from one process:

  /        six charts built once from the demographics table
  /editor  a pie chart driven by an editable JSON dataset

Run "chartweb serve" to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFrom(configPath, !cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		logger, err = cfg.Log.NewLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write every demographics chart as an SVG file",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the demographics table as an Excel workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	renderCmd.Flags().StringVarP(&renderDir, "out", "o", "charts", "Output directory")
	exportCmd.Flags().StringVarP(&exportFile, "out", "o", "demographics.xlsx", "Output file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("server starting",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("records", a.Demographics.Len()),
		zap.Int("charts", len(a.Figures())))
	return server.New(a).ListenAndServe(ctx)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, f := range a.Figures() {
		path := filepath.Join(renderDir, f.ID+".svg")
		if err := os.WriteFile(path, f.SVG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, humanize.Bytes(uint64(len(f.SVG))))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	table, err := app.LoadDemographics(cfg, logger)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := fixture.WriteExcel(&buf, table, "Demographics"); err != nil {
		return fmt.Errorf("export demographics: %w", err)
	}
	if err := os.WriteFile(exportFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportFile, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %s\n", exportFile, table.Len(), humanize.Bytes(uint64(buf.Len())))
	return nil
}
