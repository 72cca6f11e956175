// Package main provides the CLI entrypoint for bikeshare.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/reportui"
	"github.com/verte-zerg/bikeshare/internal/session"
	"github.com/verte-zerg/bikeshare/internal/textfmt"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

const defaultLogLevel = "warn"

var (
	dataDir  string
	logLevel string

	reportCity  string
	reportMonth string
	reportDay   string
)

// app is the resolved configuration shared by every command.
type app struct {
	dataDir string
	cities  []model.City
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip data",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runSessionCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory containing the city CSV files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadApp resolves flags against the config file and configures logging.
func loadApp(cmd *cobra.Command) (app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return app{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &dataDir, fileCfg.Data.Dir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	if err := setupLogging(logLevel); err != nil {
		return app{}, err
	}

	cities, err := fileCfg.ResolveCities()
	if err != nil {
		return app{}, fmt.Errorf("failed to resolve cities: %w", err)
	}
	log.Debug().Str("data_dir", dataDir).Int("cities", len(cities)).Msg("configuration loaded")
	return app{dataDir: dataDir, cities: cities}, nil
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	s := &session.Session{
		DataDir: a.dataDir,
		Cities:  a.cities,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
	}
	return s.Run()
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportCity, "city", "", "city to analyze (required)")
	cmd.Flags().StringVar(&reportMonth, "month", model.FilterAll, "month filter (all, january ... june)")
	cmd.Flags().StringVar(&reportDay, "day", model.FilterAll, "day filter (all, monday ... sunday)")
}

// resolveSelection validates the --city, --month and --day flags.
func resolveSelection(a app) (model.City, model.Filter, error) {
	if strings.TrimSpace(reportCity) == "" {
		return model.City{}, model.Filter{}, fmt.Errorf("--city is required")
	}
	city, err := session.FindCity(a.cities, strings.ToLower(strings.TrimSpace(reportCity)))
	if err != nil {
		return model.City{}, model.Filter{}, err
	}
	filter, err := session.ParseFilter(reportMonth, reportDay)
	if err != nil {
		return model.City{}, model.Filter{}, err
	}
	return city, filter, nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print all reports for one city and filter",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addFilterFlags(cmd)
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	city, filter, err := resolveSelection(a)
	if err != nil {
		return err
	}
	return session.RunReports(cmd.OutOrStdout(), a.dataDir, city, filter)
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse reports in a full-screen view",
		Args:  cobra.NoArgs,
		RunE:  runViewCmd,
	}
	addFilterFlags(cmd)
	return cmd
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	city, filter, err := resolveSelection(a)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view requires a terminal; use report instead")
	}
	table, err := trips.LoadCity(a.dataDir, city, filter)
	if err != nil {
		return err
	}
	program := tea.NewProgram(reportui.NewModel(city, filter, table), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report TUI: %w", err)
	}
	return nil
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List available cities and their data files",
		Args:  cobra.NoArgs,
		RunE:  runCitiesCmd,
	}
}

func runCitiesCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(a.cities))
	for _, city := range a.cities {
		rows = append(rows, []string{
			model.Title(city.Name),
			city.File,
			yesNo(city.Demographics),
			yesNo(fileExists(trips.SourcePath(a.dataDir, city))),
		})
	}
	lines := textfmt.Table([]string{"City", "File", "Demographics", "Present"}, rows, nil)
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	var cities strings.Builder
	for _, city := range model.DefaultCities() {
		fmt.Fprintf(&cities, "# [cities.%q]\n# file = %q\n", city.Name, city.File)
	}
	return fmt.Sprintf(`# bikeshare configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# dir = %q               # Directory containing the city CSV files

[log]
# level = %q          # debug, info, warn or error

# Override the data file of a known city:
%s`,
		config.DefaultDataDir(),
		defaultLogLevel,
		cities.String(),
	)
}
