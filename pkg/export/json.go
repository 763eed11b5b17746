package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

// WriteJSON writes records to path as a JSON array, preserving order.
// An empty run still produces a valid file containing [].
func WriteJSON(records []models.ClinicRecord, path string, log *logrus.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory for '%s': %w", path, err)
		}
	}

	if records == nil {
		records = []models.ClinicRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing JSON file '%s': %w", path, err)
	}

	log.WithFields(logrus.Fields{"path": path, "records": len(records)}).Info("Wrote JSON export")
	return nil
}
