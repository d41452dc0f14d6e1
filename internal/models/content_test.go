package models

import "testing"

func TestRecordContentType_Valid(t *testing.T) {
	ct, ok := RecordContentType("alumni_001")
	if !ok {
		t.Fatal("expected alumni_001 to decode")
	}
	if ct != ContentAlumni {
		t.Errorf("expected alumni, got %s", ct)
	}
}

func TestRecordContentType_UnknownType(t *testing.T) {
	if _, ok := RecordContentType("other_001"); ok {
		t.Error("expected other_001 to be rejected")
	}
}

func TestRecordContentType_MissingDigits(t *testing.T) {
	if IsValidRecordID("alumni_") {
		t.Error("expected alumni_ to be invalid")
	}
}

func TestIsValidRecordID_AgreesWithRecordContentType(t *testing.T) {
	cases := []string{
		"alumni_001",
		"publication_42",
		"photo_0",
		"faculty_123456",
		"alumni_",
		"_001",
		"alumni",
		"",
		"alumni_01_2",
		"alumni_x1",
		"Alumni_001",
		"alumni 001",
		"other_001",
		"faculty_1 ",
		"publication__1",
	}
	for _, id := range cases {
		_, decoded := RecordContentType(id)
		if IsValidRecordID(id) != decoded {
			t.Errorf("IsValidRecordID(%q) disagrees with RecordContentType", id)
		}
	}
}

func TestIsValidRecordID_NonDigitRun(t *testing.T) {
	for _, id := range []string{"alumni_00a", "photo_1.5", "faculty_-1"} {
		if IsValidRecordID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestContentTypeIsValid(t *testing.T) {
	for _, ct := range ContentTypes() {
		if !ct.IsValid() {
			t.Errorf("expected %s to be valid", ct)
		}
	}
	if ContentType("board").IsValid() {
		t.Error("expected board to be invalid")
	}
}

func TestFieldKindOf(t *testing.T) {
	kind, ok := FieldKindOf(ContentAlumni, "year")
	if !ok || kind != FieldNumber {
		t.Errorf("expected alumni year to be a number field, got %s %v", kind, ok)
	}
	if _, ok := FieldKindOf(ContentAlumni, "publicationType"); ok {
		t.Error("expected publicationType to be undeclared for alumni")
	}
}

func TestSchema_EveryTypeDeclaresFields(t *testing.T) {
	for _, ct := range ContentTypes() {
		if len(Schema(ct)) == 0 {
			t.Errorf("expected %s to declare fields", ct)
		}
	}
}
