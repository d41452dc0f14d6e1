package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

func testRecords() []models.Record {
	return []models.Record{
		{
			ID:   "alumni_001",
			Type: models.ContentAlumni,
			Fields: map[string]any{
				"firstName": "Ada",
				"lastName":  "Quill",
				"year":      1998.0,
				"featured":  true,
				"gradDate":  time.Date(1998, time.May, 16, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			ID:   "alumni_002",
			Type: models.ContentAlumni,
			Fields: map[string]any{
				"firstName": "Ben",
				"lastName":  "Marsh",
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alumni.csv")
	if err := ExportToCSV(models.ContentAlumni, testRecords(), path); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "first_name" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	// Find columns by header so the test does not depend on schema order.
	col := map[string]int{}
	for i, h := range rows[0] {
		col[h] = i
	}
	if rows[1][col["grad_year"]] != "1998" {
		t.Errorf("numbers must decimal-stringify, got %q", rows[1][col["grad_year"]])
	}
	if rows[1][col["grad_date"]] != "1998-05-16" {
		t.Errorf("dates must use the source layout, got %q", rows[1][col["grad_date"]])
	}
	if rows[2][col["grad_year"]] != "" {
		t.Error("absent fields must export as empty cells")
	}
}

func TestExportToCSV_RejectsMixedTypes(t *testing.T) {
	recs := []models.Record{{ID: "photo_001", Type: models.ContentPhoto, Fields: map[string]any{}}}
	path := filepath.Join(t.TempDir(), "alumni.csv")
	if err := ExportToCSV(models.ContentAlumni, recs, path); err == nil {
		t.Error("expected a record of another content type to be rejected")
	}
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alumni.json")
	if err := ExportToJSON(testRecords(), path); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(out))
	}
	if out[0]["id"] != "alumni_001" || out[0]["type"] != "alumni" {
		t.Errorf("unexpected identity fields: %v", out[0])
	}
	if out[0]["gradDate"] != "1998-05-16" {
		t.Errorf("dates must serialize as %s strings, got %v", "2006-01-02", out[0]["gradDate"])
	}
}
