// Package storage persists simulation runs: one directory per run with a
// metadata JSON file and one CSV of band responses per receiver.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/config"
)

// Store reads and writes runs under a base directory.
type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory if needed.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored simulation run.
type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Room         *config.Config     `json:"room"`
	SampleRate   float64            `json:"sample_rate"`
	BufferLength int                `json:"buffer_length"`
	SpeedOfSound float64            `json:"speed_of_sound"`
	Enhanced     bool               `json:"enhanced"`
	Receivers    int                `json:"receivers"`
	RT60         map[string]float64 `json:"rt60"`
}

// Save writes a run directory with metadata and per-receiver response CSVs
// and returns the run ID.
func (s *Store) Save(name string, cfg *config.Config, opts acoustics.Options,
	rt60 map[acoustics.Band]float64, responses map[acoustics.Band][]acoustics.ImpulseResponse) (string, error) {

	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	numReceivers := 0
	for _, irs := range responses {
		numReceivers = len(irs)
		break
	}

	rt60Out := make(map[string]float64, len(rt60))
	for band, v := range rt60 {
		rt60Out[string(band)] = v
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    time.Now(),
		Room:         cfg,
		SampleRate:   opts.SampleRate,
		BufferLength: opts.BufferLength,
		SpeedOfSound: opts.SpeedOfSound,
		Enhanced:     opts.Enhanced,
		Receivers:    numReceivers,
		RT60:         rt60Out,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for r := 0; r < numReceivers; r++ {
		if err := s.writeReceiverCSV(runDir, r, opts.SampleRate, responses); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeReceiverCSV(runDir string, receiver int, sampleRate float64,
	responses map[acoustics.Band][]acoustics.ImpulseResponse) error {

	f, err := os.Create(filepath.Join(runDir, responseFile(receiver)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"sample", "time", "low", "mid", "high"}); err != nil {
		return err
	}

	low := responses[acoustics.BandLow][receiver]
	mid := responses[acoustics.BandMid][receiver]
	high := responses[acoustics.BandHigh][receiver]

	for i := range low {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(i)/sampleRate, 'f', 6, 64),
			strconv.FormatFloat(low[i], 'g', -1, 64),
			strconv.FormatFloat(mid[i], 'g', -1, 64),
			strconv.FormatFloat(high[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every run under the base directory.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResponses reads one receiver's band responses back, returning the
// per-band sample sequences and the time axis.
func (s *Store) LoadResponses(runID string, receiver int) (map[acoustics.Band][]float64, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, responseFile(receiver)))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return map[acoustics.Band][]float64{}, []float64{}, nil
	}

	n := len(records) - 1
	times := make([]float64, 0, n)
	out := map[acoustics.Band][]float64{
		acoustics.BandLow:  make([]float64, 0, n),
		acoustics.BandMid:  make([]float64, 0, n),
		acoustics.BandHigh: make([]float64, 0, n),
	}

	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		low, err1 := strconv.ParseFloat(record[2], 64)
		mid, err2 := strconv.ParseFloat(record[3], 64)
		high, err3 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		times = append(times, t)
		out[acoustics.BandLow] = append(out[acoustics.BandLow], low)
		out[acoustics.BandMid] = append(out[acoustics.BandMid], mid)
		out[acoustics.BandHigh] = append(out[acoustics.BandHigh], high)
	}
	return out, times, nil
}

func responseFile(receiver int) string {
	return fmt.Sprintf("responses_r%d.csv", receiver)
}
