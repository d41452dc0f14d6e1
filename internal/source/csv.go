// Package source loads kiosk records from per-content-type CSV files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

const dateLayout = "2006-01-02"

// Load reads the records of one content type from dir. The file is named
// after the type (alumni.csv, publication.csv, ...). Columns are matched
// against the declared schema by CSV header; unknown columns are ignored
// and cells that fail to parse leave the field absent, matching the
// engine's missing-field semantics. Record order follows file order.
func Load(dir string, ct models.ContentType) ([]models.Record, error) {
	if !ct.IsValid() {
		return nil, fmt.Errorf("invalid content type %q", ct)
	}

	path := filepath.Join(dir, string(ct)+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record source: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := readRecords(file, ct)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// LoadAll reads every content type present in dir. Types without a source
// file are skipped rather than treated as errors, so a kiosk can run with
// a partial data set.
func LoadAll(dir string) (map[models.ContentType][]models.Record, error) {
	out := map[models.ContentType][]models.Record{}
	for _, ct := range models.ContentTypes() {
		recs, err := Load(dir, ct)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out[ct] = recs
	}
	return out, nil
}

func readRecords(r io.Reader, ct models.ContentType) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Map column index -> field definition.
	cols := map[int]models.FieldDef{}
	idCol := -1
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "id" {
			idCol = i
			continue
		}
		for _, def := range models.Schema(ct) {
			if def.CSVHeader == h {
				cols[i] = def
				break
			}
		}
	}

	var records []models.Record
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rowNum++

		fields := map[string]any{}
		for i, cell := range row {
			def, ok := cols[i]
			if !ok {
				continue
			}
			if v, ok := parseCell(def, cell); ok {
				fields[def.Name] = v
			}
		}

		id := fmt.Sprintf("%s_%03d", ct, rowNum)
		if idCol >= 0 && idCol < len(row) {
			if candidate := strings.TrimSpace(row[idCol]); models.IsValidRecordID(candidate) {
				if found, _ := models.RecordContentType(candidate); found == ct {
					id = candidate
				}
			}
		}

		records = append(records, models.Record{ID: id, Type: ct, Fields: fields})
	}
	return records, nil
}

func parseCell(def models.FieldDef, cell string) (any, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, false
	}

	switch def.Kind {
	case models.FieldString:
		if def.Name == "photoFile" {
			cell = normalizePhotoPath(cell)
			if cell == "" {
				return nil, false
			}
		}
		return cell, true
	case models.FieldNumber:
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case models.FieldBoolean:
		b, err := strconv.ParseBool(strings.ToLower(cell))
		if err != nil {
			return nil, false
		}
		return b, true
	case models.FieldDate:
		t, err := time.Parse(dateLayout, cell)
		if err != nil {
			return nil, false
		}
		return t, true
	}
	return nil, false
}

// normalizePhotoPath cleans up the photo path column from legacy exports:
// quotes and padding are stripped, anything under /photos/ is rewritten to
// that suffix, and other paths are discarded.
func normalizePhotoPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	s = strings.TrimSpace(s)

	i := strings.Index(s, "/photos/")
	if i < 0 {
		return ""
	}
	rest := s[i+len("/photos/"):]
	if rest == "" {
		return ""
	}
	return "/photos/" + rest
}
