package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/bkspace/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Items      []Item       `json:"items"`
	Record     store.Record `json:"record"`
}

// ToJSON writes the resolved items together with the raw record, so the file
// doubles as a backup.
func ToJSON(rec store.Record, c Content, path string) error {
	items := Build(rec, c)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(items),
		Items:      items,
		Record:     rec.Clone(),
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
