// Package export writes a filtered record set to CSV or JSON, typically
// for a curator pulling data off the kiosk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

const dateLayout = "2006-01-02"

// ExportToCSV writes records of one content type to a CSV file. Columns
// follow the declared schema order with the record id first; absent fields
// become empty cells.
func ExportToCSV(ct models.ContentType, records []models.Record, path string) error {
	if !ct.IsValid() {
		return fmt.Errorf("invalid content type %q", ct)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	schema := models.Schema(ct)
	header := []string{"id"}
	for _, def := range schema {
		header = append(header, def.CSVHeader)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		if rec.Type != ct {
			return fmt.Errorf("record %s is not a %s record", rec.ID, ct)
		}
		row := []string{rec.ID}
		for _, def := range schema {
			v, ok := rec.Field(def.Name)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatValue(v))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// ExportToJSON writes records to a JSON file as an array of objects with
// id, type and the present fields.
func ExportToJSON(records []models.Record, path string) error {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		entry := map[string]any{
			"id":   rec.ID,
			"type": string(rec.Type),
		}
		for name, v := range rec.Fields {
			if t, ok := v.(time.Time); ok {
				entry[name] = t.Format(dateLayout)
				continue
			}
			entry[name] = v
		}
		out = append(out, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records to JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(dateLayout)
	}
	return fmt.Sprintf("%v", v)
}
