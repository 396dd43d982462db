package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/export"
	"github.com/san-kum/fieldviz/internal/grid"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

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
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Timestamp    time.Time            `json:"timestamp"`
	Expression   string               `json:"expression"`
	Components   decompose.Components `json:"components"`
	Dimension    int                  `json:"dimension"`
	Grid         grid.Grid            `json:"grid"`
	Time         float64              `json:"time"`
	Count        int                  `json:"count"`
	MaxMagnitude float64              `json:"max_magnitude"`
	Summary      analysis.Summary     `json:"summary"`
}

// Save writes frame under a new run directory named after name and the
// current time, returning the run ID.
func (s *Store) Save(name string, frame *pipeline.Frame) (string, error) {
	if name == "" {
		name = "field"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    now,
		Expression:   frame.Expression,
		Components:   frame.Components,
		Dimension:    frame.Dimension,
		Grid:         frame.Grid,
		Time:         frame.Time,
		Count:        frame.Count,
		MaxMagnitude: frame.MaxMagnitude,
		Summary:      analysis.Summarize(frame.Samples),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, frame.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns the metadata of every readable run, oldest first. Missing
// base directories yield an empty list.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the samples stored for a run.
func (s *Store) LoadSamples(runID string) ([]grid.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	samples, err := export.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return samples, nil
}

// LoadFrame rebuilds a frame from a stored run, renormalizing its samples.
func (s *Store) LoadFrame(runID string) (*pipeline.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	peak := analysis.MaxMagnitude(samples)
	return &pipeline.Frame{
		Time:         meta.Time,
		Expression:   meta.Expression,
		Components:   meta.Components,
		Dimension:    meta.Dimension,
		Grid:         meta.Grid,
		Samples:      samples,
		Normalized:   analysis.Normalize(samples, peak),
		Count:        len(samples),
		MaxMagnitude: peak,
	}, nil
}
