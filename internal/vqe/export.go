package vqe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qsimlab/vqe-core/pkg/config"
	"github.com/qsimlab/vqe-core/pkg/utils"
)

// ResultRecord is the exportable description of one completed run.
type ResultRecord struct {
	RunID            string            `json:"run_id"`
	Molecule         string            `json:"molecule"`
	Geometry         string            `json:"geometry"`
	Basis            string            `json:"basis"`
	Optimizer        string            `json:"optimizer"`
	MaxIterations    int               `json:"max_iterations"`
	VQEEnergy        float64           `json:"vqe_energy"`
	ClassicalEnergy  float64           `json:"classical_energy"`
	NuclearRepulsion float64           `json:"nuclear_repulsion"`
	ErrorPercent     float64           `json:"error_percent"`
	Samples          []IterationSample `json:"iterations"`
	Analytics        *Analytics        `json:"analytics,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Exporter writes result records as JSON files.
type Exporter struct {
	dir string
}

func NewExporter(cfg *config.ExportConfig) *Exporter {
	if cfg == nil {
		cfg = config.Default().Export
	}
	return &Exporter{dir: cfg.Dir}
}

// Export writes rec to a timestamped file under the export directory
// and returns the full path. The file appears atomically: it is staged
// under a temporary name and renamed, so a crash never leaves a
// half-written export behind.
func (x *Exporter) Export(rec *ResultRecord) (string, error) {
	if rec == nil {
		return "", &ValidationError{Reason: "nothing to export"}
	}
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	path := filepath.Join(x.dir, utils.GenerateExportName(rec.Molecule))
	tmp, err := os.CreateTemp(x.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage export: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to publish export: %w", err)
	}
	return path, nil
}
