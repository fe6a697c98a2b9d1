package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile  string
	startFlag   string
	duration    string
	frameStep   string
	mode        string
	metricsAddr string
	noSave      bool
	subject     string
	central     string

	svgOut    string
	svgWidth  int
	svgHeight int

	eccentricity float64
	semiMajor    float64
	inclination  float64
	node         float64
	periapsis    float64
	meanAnomaly  float64
	centralMass  float64
	samples      int
)

var (
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	label = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	value = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	good  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbsim",
		Short:         "orbital dynamics simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, none)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a preset or scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&startFlag, "start", "", "start epoch (RFC 3339 or JD)")
	runCmd.Flags().StringVar(&duration, "duration", "", "simulated duration, e.g. 90m")
	runCmd.Flags().StringVar(&frameStep, "frame", "", "simulated time per frame, e.g. 1m")
	runCmd.Flags().StringVar(&mode, "mode", "accelerated", "frame pacing (realtime, accelerated)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the trajectory")
	runCmd.Flags().StringVar(&subject, "subject", "", "body whose orbit is measured")
	runCmd.Flags().StringVar(&central, "central", "", "body the subject orbits")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body]",
		Short: "plot a body's distance from the central body",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&central, "central", "", "measure distance from this body instead of the origin")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id] [body]",
		Short: "export a body's xy track as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "sample state vectors from keplerian elements (degrees, metres)",
		Args:  cobra.NoArgs,
		RunE:  sampleElements,
	}
	elementsCmd.Flags().Float64VarP(&eccentricity, "ecc", "e", 0, "eccentricity")
	elementsCmd.Flags().Float64VarP(&semiMajor, "sma", "a", 7e6, "semi-major axis (m)")
	elementsCmd.Flags().Float64VarP(&inclination, "inc", "i", 0, "inclination (deg)")
	elementsCmd.Flags().Float64Var(&node, "node", 0, "longitude of ascending node (deg)")
	elementsCmd.Flags().Float64Var(&periapsis, "periapsis", 0, "argument of periapsis (deg)")
	elementsCmd.Flags().Float64VarP(&meanAnomaly, "mean-anomaly", "m", 0, "mean anomaly at epoch (deg)")
	elementsCmd.Flags().Float64Var(&centralMass, "mass", 5.972e24, "central body mass (kg)")
	elementsCmd.Flags().IntVar(&samples, "samples", 8, "samples across one period")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, svgCmd, exportJSONCmd, elementsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
