package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/bkspace/internal/store"
)

func ToCSV(rec store.Record, c Content, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Kind", "ID", "Date", "Title"}); err != nil {
		return err
	}

	for _, it := range Build(rec, c) {
		if err := w.Write([]string{it.Kind, it.ID, it.Date, it.Title}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
