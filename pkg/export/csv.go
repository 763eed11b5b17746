package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

// CSVColumns is the fixed export schema, in order.
var CSVColumns = []string{"Name of Clinic", "Address", "Email", "Phone", "Services"}

// recordToRow flattens a record into the CSV schema.
// Services are joined with "; " so the column stays a single cell.
func recordToRow(record models.ClinicRecord) []string {
	return []string{
		record.Name,
		record.Address,
		record.Email,
		record.Phone,
		strings.Join(record.Services, "; "),
	}
}

// WriteCSV writes records to path in the fixed five-column schema.
// Returns the number of records written.
func WriteCSV(records []models.ClinicRecord, path string, log *logrus.Logger) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("creating output directory for '%s': %w", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating CSV file '%s': %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(CSVColumns); err != nil {
		return 0, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(recordToRow(record)); err != nil {
			return 0, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flushing CSV file '%s': %w", path, err)
	}

	log.WithFields(logrus.Fields{"path": path, "records": len(records)}).Info("Wrote CSV export")
	return len(records), nil
}

// WriteIncompleteCSV writes only records missing a critical field, in the
// same schema. When every record is complete, no file is created and zero
// is returned.
func WriteIncompleteCSV(records []models.ClinicRecord, path string, log *logrus.Logger) (int, error) {
	var incomplete []models.ClinicRecord
	for _, record := range records {
		if !record.Complete() {
			incomplete = append(incomplete, record)
		}
	}
	if len(incomplete) == 0 {
		log.Debug("No incomplete records; skipping incomplete-records export")
		return 0, nil
	}
	return WriteCSV(incomplete, path, log)
}
