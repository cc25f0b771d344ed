package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/series"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest() *models.Manifest {
	return &models.Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// SummarizeSeries returns the manifest entries of list.
func SummarizeSeries(list []models.Series) []models.SeriesSummary {
	out := make([]models.SeriesSummary, 0, len(list))
	for _, s := range list {
		sum := models.SeriesSummary{
			Label:   s.Label,
			Dataset: s.Dataset,
			X:       s.X.Name,
			Y:       s.Y.Name,
			Samples: s.Len(),
		}
		if x, y, err := series.Ranges([]models.Series{s}); err == nil {
			sum.XRange, sum.YRange = x, y
		}
		out = append(out, sum)
	}
	return out
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m *models.Manifest) error {
	data, err := ToJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
