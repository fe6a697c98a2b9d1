package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/orbsim/internal/storage"
)

type ExportData struct {
	Run    storage.RunMetadata `json:"run"`
	Tracks map[string][]Fix    `json:"tracks"`
}

// Fix is one recorded position, with time in seconds since the run start.
type Fix struct {
	Elapsed float64    `json:"t"`
	Pos     [3]float64 `json:"pos"`
}

// WriteJSON writes a run and its samples grouped by body.
func WriteJSON(w io.Writer, meta storage.RunMetadata, samples []storage.Sample) error {
	data := ExportData{
		Run:    meta,
		Tracks: make(map[string][]Fix, len(meta.Bodies)),
	}
	for _, s := range samples {
		data.Tracks[s.Body] = append(data.Tracks[s.Body], Fix{
			Elapsed: s.Time.Sub(meta.Start).Round(time.Millisecond).Seconds(),
			Pos:     [3]float64{s.X, s.Y, s.Z},
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
