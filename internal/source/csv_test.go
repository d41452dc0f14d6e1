package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestLoad_TypesColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "alumni.csv",
		"first_name,last_name,class_role,grad_year,grad_date,featured\n"+
			"Ada,Quill,President,1998,1998-05-16,true\n"+
			"Ben,Marsh,,2004,2004-05-22,false\n")

	recs, err := Load(dir, models.ContentAlumni)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	r := recs[0]
	if r.Type != models.ContentAlumni {
		t.Errorf("expected alumni type, got %s", r.Type)
	}
	if v, _ := r.Field("year"); v != 1998.0 {
		t.Errorf("grad_year must load as number field year, got %v", v)
	}
	if v, _ := r.Field("featured"); v != true {
		t.Errorf("featured must load as bool, got %v", v)
	}
	if v, _ := r.Field("gradDate"); v != time.Date(1998, time.May, 16, 0, 0, 0, 0, time.UTC) {
		t.Errorf("grad_date must load as date, got %v", v)
	}
	if _, ok := recs[1].Field("classRole"); ok {
		t.Error("an empty cell must leave the field absent")
	}
}

func TestLoad_GeneratesIDs(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "alumni.csv",
		"first_name\nAda\nBen\n")

	recs, err := Load(dir, models.ContentAlumni)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if recs[0].ID != "alumni_001" || recs[1].ID != "alumni_002" {
		t.Errorf("expected generated sequential ids, got %s %s", recs[0].ID, recs[1].ID)
	}
	if !models.IsValidRecordID(recs[0].ID) {
		t.Errorf("generated id %q must be valid", recs[0].ID)
	}
}

func TestLoad_KeepsDeclaredIDColumn(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "alumni.csv",
		"id,first_name\nalumni_900,Ada\nphoto_001,Ben\nnonsense,Cy\n")

	recs, err := Load(dir, models.ContentAlumni)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if recs[0].ID != "alumni_900" {
		t.Errorf("a valid declared id must be kept, got %s", recs[0].ID)
	}
	if recs[1].ID != "alumni_002" {
		t.Errorf("an id of another content type must be replaced, got %s", recs[1].ID)
	}
	if recs[2].ID != "alumni_003" {
		t.Errorf("a malformed id must be replaced, got %s", recs[2].ID)
	}
}

func TestLoad_BadCellsDropped(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "alumni.csv",
		"first_name,grad_year,grad_date,featured\n"+
			"Ada,abc,not-a-date,perhaps\n")

	recs, err := Load(dir, models.ContentAlumni)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	r := recs[0]
	for _, field := range []string{"year", "gradDate", "featured"} {
		if _, ok := r.Field(field); ok {
			t.Errorf("unparsable %s cell must leave the field absent", field)
		}
	}
	if v, _ := r.Field("firstName"); v != "Ada" {
		t.Error("parsable cells in the same row must still load")
	}
}

func TestLoad_PhotoPathNormalization(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "photo.csv",
		"title,photo_file\n"+
			"A,\" '/old/export/photos/reunion/a.jpg' \"\n"+
			"B,/photos/b.jpg\n"+
			"C,C:\\scans\\c.jpg\n")

	recs, err := Load(dir, models.ContentPhoto)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := recs[0].Field("photoFile"); v != "/photos/reunion/a.jpg" {
		t.Errorf("expected /photos/reunion/a.jpg, got %v", v)
	}
	if v, _ := recs[1].Field("photoFile"); v != "/photos/b.jpg" {
		t.Errorf("expected /photos/b.jpg, got %v", v)
	}
	if _, ok := recs[2].Field("photoFile"); ok {
		t.Error("paths outside /photos/ must be cleared")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir(), models.ContentAlumni); err == nil {
		t.Error("expected an error for a missing source file")
	}
}

func TestLoadAll_SkipsMissingTypes(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "faculty.csv",
		"first_name,last_name,position\nIda,Rowe,Dean\n")

	all, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected only faculty to load, got %d types", len(all))
	}
	if v, _ := all[models.ContentFaculty][0].Field("position"); v != "Dean" {
		t.Errorf("expected position Dean, got %v", v)
	}
}
