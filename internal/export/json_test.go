package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/san-kum/orbsim/internal/storage"
)

func TestWriteJSON(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := storage.RunMetadata{ID: "free-fall_1", Scenario: "free-fall", Start: start, Bodies: []string{"earth", "rocket"}}
	samples := []storage.Sample{
		{Time: start, Body: "earth"},
		{Time: start, Body: "rocket", X: 6741000},
		{Time: start.Add(time.Minute), Body: "earth"},
		{Time: start.Add(time.Minute), Body: "rocket", X: 6740000, Y: 466000},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, samples); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Run.ID != "free-fall_1" {
		t.Errorf("expected run id free-fall_1, got %s", got.Run.ID)
	}
	rocket := got.Tracks["rocket"]
	if len(rocket) != 2 || len(got.Tracks["earth"]) != 2 {
		t.Fatalf("unexpected tracks %+v", got.Tracks)
	}
	if rocket[1].Elapsed != 60 || rocket[1].Pos[1] != 466000 {
		t.Errorf("unexpected fix %+v", rocket[1])
	}
}
