package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/storage"
)

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(title.Render("presets"))
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Printf("  %s %s\n", value.Render(fmt.Sprintf("%-14s", name)), label.Render(p.Description))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSAVED\tSTART\tSIMULATED\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
		)
	}
	return w.Flush()
}

func loadTrack(runID, name string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	track := storage.Track(samples, name)
	if len(track) == 0 {
		return nil, nil, fmt.Errorf("no samples for body %q (run has %v)", name, meta.Bodies)
	}
	return meta, track, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID, name := args[0], args[1]
	meta, track, err := loadTrack(runID, name)
	if err != nil {
		return err
	}

	var origin []storage.Sample
	if central != "" {
		if _, origin, err = loadTrack(runID, central); err != nil {
			return err
		}
	}

	data := make([]float64, len(track))
	for i, s := range track {
		x, y, z := s.X, s.Y, s.Z
		if i < len(origin) {
			x, y, z = x-origin[i].X, y-origin[i].Y, z-origin[i].Z
		}
		data[i] = norm(x, y, z) / 1000
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(track))

	caption := fmt.Sprintf("%s distance (km) over %v", name, meta.Duration)
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, track, err := loadTrack(args[0], args[1])
	if err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(export.ProjectXY(track), svgWidth, svgHeight, "#00ff88")
	if svg == "" {
		return fmt.Errorf("need at least two samples to draw %q", args[1])
	}
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, *meta, samples)
}
