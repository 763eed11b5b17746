package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleRecords() []models.ClinicRecord {
	return []models.ClinicRecord{
		{
			URL:      "https://www.myfootdr.com.au/our-clinics/brisbane/example",
			Name:     "Example Clinic",
			Address:  "123 Main Rd, Brisbane QLD",
			Email:    "example@myfootdr.com.au",
			Phone:    "0712345678",
			Services: []string{"General podiatry", "Orthotics"},
		},
		{
			URL:  "https://www.myfootdr.com.au/our-clinics/brisbane/bare",
			Name: "Bare Clinic",
		},
	}
}

func TestWriteCSV_SchemaAndJoin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.csv")

	n, err := WriteCSV(sampleRecords(), path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVColumns, rows[0])
	assert.Equal(t, []string{
		"Example Clinic",
		"123 Main Rd, Brisbane QLD",
		"example@myfootdr.com.au",
		"0712345678",
		"General podiatry; Orthotics",
	}, rows[1])
	// Absent fields export as empty cells, never placeholders
	assert.Equal(t, []string{"Bare Clinic", "", "", "", ""}, rows[2])
}

func TestWriteIncompleteCSV_OnlyIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incomplete.csv")

	n, err := WriteIncompleteCSV(sampleRecords(), path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bare Clinic", rows[1][0])
}

func TestWriteIncompleteCSV_NoArtifactWhenAllComplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incomplete.csv")
	complete := sampleRecords()[:1]

	n, err := WriteIncompleteCSV(complete, path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created when every record is complete")
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")

	require.NoError(t, WriteJSON(sampleRecords(), path, testLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.ClinicRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleRecords(), got)
}

func TestWriteJSON_EmptyRunStillValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")

	require.NoError(t, WriteJSON(nil, path, testLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.ClinicRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Empty(t, got)
}
