package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidFile(t *testing.T) {
	content := `
start_url: "https://web.archive.org/web/20250708180027/https://www.myfootdr.com.au/our-clinics/"
max_pages: 25
max_retries: 2
output:
  csv_path: "clinics.csv"
  incomplete_csv_path: "incomplete.csv"
extraction:
  generic_phone_numbers: ["1800366837", "131450"]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, "clinics.csv", cfg.Output.CSVPath)
	assert.Equal(t, []string{"1800366837", "131450"}, cfg.Extraction.GenericPhoneNumbers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_url: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
