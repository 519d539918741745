package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var ErrNoColumn = errors.New("storage: no such column")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Layout    string             `json:"layout"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       float64            `json:"fps"`
	Jitter    float64            `json:"jitter"`
	Timestep  float64            `json:"timestep"`
	Duration  float64            `json:"duration"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Scaling   float64            `json:"scaling"`
	Objects   int                `json:"objects"`
	Frames    int                `json:"frames"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the trace under a fresh run id and returns it.
func (s *Store) Save(meta RunMetadata, trace *Trace) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Layout, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if trace == nil || len(trace.Rows) == 0 {
		return runID, nil
	}

	header := append([]string{"time"}, trace.Header...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, r := range trace.Rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, strconv.FormatFloat(trace.Times[i], 'f', 6, 64))
		for _, val := range r {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads a run's trace back. Unparseable cells are skipped.
func (s *Store) LoadTrace(runID string) (*Trace, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := &Trace{}
	if len(records) == 0 {
		return trace, nil
	}
	trace.Header = records[0][1:]

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		trace.Times = append(trace.Times, t)
		trace.Rows = append(trace.Rows, row)
	}

	return trace, nil
}

// LoadColumn reads one named trace column.
func (s *Store) LoadColumn(runID, name string) ([]float64, []float64, error) {
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	col := trace.Column(name)
	if col == nil {
		return nil, nil, fmt.Errorf("%w: %q in run %s", ErrNoColumn, name, runID)
	}
	return col, trace.Times, nil
}
