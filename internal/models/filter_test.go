package models

import "testing"

func TestFlatFilterValidate_TypeScopedFields(t *testing.T) {
	f := FlatFilter{Type: ContentAlumni, PublicationType: "journal"}
	if err := f.Validate(); err == nil {
		t.Error("expected publicationType on an alumni filter to be rejected")
	}

	f = FlatFilter{Type: ContentPublication, PublicationType: "journal"}
	if err := f.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	f = FlatFilter{Type: ContentAlumni, Collection: "events"}
	if err := f.Validate(); err == nil {
		t.Error("expected collection on an alumni filter to be rejected")
	}

	f = FlatFilter{Type: ContentPhoto, Position: "Dean"}
	if err := f.Validate(); err == nil {
		t.Error("expected position on a photo filter to be rejected")
	}
}

func TestFlatFilterValidate_CommonFields(t *testing.T) {
	year := 2019
	for _, ct := range ContentTypes() {
		f := FlatFilter{Type: ct, Year: &year, Department: "Law"}
		if err := f.Validate(); err != nil {
			t.Errorf("year/department should be valid for %s: %v", ct, err)
		}
	}
}

func TestFlatFilterValidate_InvalidType(t *testing.T) {
	if err := (FlatFilter{Type: "board"}).Validate(); err == nil {
		t.Error("expected invalid content type to be rejected")
	}
}

func TestOperatorIsValid(t *testing.T) {
	if !OpAnd.IsValid() || !OpOr.IsValid() {
		t.Error("AND/OR must be valid operators")
	}
	if Operator("XOR").IsValid() {
		t.Error("XOR must not be a valid operator")
	}
}
