// Package storage persists optimization runs: metadata plus convergence
// history, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/floq/internal/config"
	"github.com/san-kum/floq/internal/experiment"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Target    string    `json:"target"`
	Spins     int       `json:"spins"`
	Optimizer string    `json:"optimizer"`
	Duration  float64   `json:"duration"`
	Seed      int64     `json:"seed"`
	Distance  float64   `json:"distance"`
	Iters     int       `json:"iterations"`
	Converged bool      `json:"converged"`
	Controls  []float64 `json:"controls"`
}

func (s *Store) Save(cfg config.Config, res *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Target, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Target:    cfg.Target,
		Spins:     cfg.Spins,
		Optimizer: cfg.Optimizer,
		Duration:  cfg.Duration,
		Seed:      cfg.Seed,
		Distance:  res.Distance,
		Iters:     res.Iters,
		Converged: res.Converged,
		Controls:  res.Controls,
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

	histFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer histFile.Close()

	w := csv.NewWriter(histFile)
	defer w.Flush()

	if err := w.Write([]string{"iter", "distance"}); err != nil {
		return "", err
	}
	for i, f := range res.History {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(f, 'e', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

func (s *Store) LoadHistory(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		f, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		history = append(history, f)
	}
	return history, nil
}
