package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/climate-careers/internal/types"
)

// LoadSectors reads the climate taxonomy source file: a JSON array of
// sectors, each carrying its opportunity areas, imperatives, moonshots, and
// tech categories.
func LoadSectors(path string) ([]types.TaxonomySector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy source %s: %w", path, err)
	}

	var sectors []types.TaxonomySector
	if err := json.Unmarshal(data, &sectors); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy source: %w", err)
	}
	if len(sectors) == 0 {
		return nil, fmt.Errorf("taxonomy source contains no sectors")
	}
	return sectors, nil
}
