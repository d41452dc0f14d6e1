package models

import "strings"

// ContentType identifies which collection a record or filter belongs to
type ContentType string

const (
	ContentAlumni      ContentType = "alumni"
	ContentPublication ContentType = "publication"
	ContentPhoto       ContentType = "photo"
	ContentFaculty     ContentType = "faculty"
)

// ContentTypes returns all content types in display order
func ContentTypes() []ContentType {
	return []ContentType{ContentAlumni, ContentPublication, ContentPhoto, ContentFaculty}
}

// IsValid checks if the content type is one of the known collections
func (ct ContentType) IsValid() bool {
	switch ct {
	case ContentAlumni, ContentPublication, ContentPhoto, ContentFaculty:
		return true
	}
	return false
}

// FieldKind is the value type of a record field
type FieldKind string

const (
	FieldString  FieldKind = "string"
	FieldNumber  FieldKind = "number"
	FieldBoolean FieldKind = "boolean"
	FieldDate    FieldKind = "date"
)

// FieldDef declares one field of a content type's record schema
type FieldDef struct {
	Name      string    // field name used by filters
	Kind      FieldKind // value type
	CSVHeader string    // column header in the source CSV
}

var schemas = map[ContentType][]FieldDef{
	ContentAlumni: {
		{Name: "firstName", Kind: FieldString, CSVHeader: "first_name"},
		{Name: "middleName", Kind: FieldString, CSVHeader: "middle_name"},
		{Name: "lastName", Kind: FieldString, CSVHeader: "last_name"},
		{Name: "classRole", Kind: FieldString, CSVHeader: "class_role"},
		{Name: "department", Kind: FieldString, CSVHeader: "department"},
		{Name: "year", Kind: FieldNumber, CSVHeader: "grad_year"},
		{Name: "gradDate", Kind: FieldDate, CSVHeader: "grad_date"},
		{Name: "photoFile", Kind: FieldString, CSVHeader: "photo_file"},
		{Name: "featured", Kind: FieldBoolean, CSVHeader: "featured"},
	},
	ContentPublication: {
		{Name: "title", Kind: FieldString, CSVHeader: "title"},
		{Name: "author", Kind: FieldString, CSVHeader: "author"},
		{Name: "department", Kind: FieldString, CSVHeader: "department"},
		{Name: "publicationType", Kind: FieldString, CSVHeader: "publication_type"},
		{Name: "year", Kind: FieldNumber, CSVHeader: "year"},
		{Name: "publishedDate", Kind: FieldDate, CSVHeader: "published_date"},
		{Name: "featured", Kind: FieldBoolean, CSVHeader: "featured"},
	},
	ContentPhoto: {
		{Name: "title", Kind: FieldString, CSVHeader: "title"},
		{Name: "collection", Kind: FieldString, CSVHeader: "collection"},
		{Name: "eventType", Kind: FieldString, CSVHeader: "event_type"},
		{Name: "department", Kind: FieldString, CSVHeader: "department"},
		{Name: "year", Kind: FieldNumber, CSVHeader: "year"},
		{Name: "takenDate", Kind: FieldDate, CSVHeader: "taken_date"},
		{Name: "photoFile", Kind: FieldString, CSVHeader: "photo_file"},
	},
	ContentFaculty: {
		{Name: "firstName", Kind: FieldString, CSVHeader: "first_name"},
		{Name: "lastName", Kind: FieldString, CSVHeader: "last_name"},
		{Name: "position", Kind: FieldString, CSVHeader: "position"},
		{Name: "department", Kind: FieldString, CSVHeader: "department"},
		{Name: "year", Kind: FieldNumber, CSVHeader: "start_year"},
		{Name: "hireDate", Kind: FieldDate, CSVHeader: "hire_date"},
		{Name: "emeritus", Kind: FieldBoolean, CSVHeader: "emeritus"},
	},
}

// Schema returns the declared fields for a content type
func Schema(ct ContentType) []FieldDef {
	return schemas[ct]
}

// FieldKindOf looks up the declared kind of a field for a content type
func FieldKindOf(ct ContentType, field string) (FieldKind, bool) {
	for _, def := range schemas[ct] {
		if def.Name == field {
			return def.Kind, true
		}
	}
	return "", false
}

// Record is a single kiosk record: an identifier plus typed field values.
// Field values are string, float64, bool or time.Time; a field missing
// from the map is treated as absent by the filter engine.
type Record struct {
	ID     string
	Type   ContentType
	Fields map[string]any
}

// Field returns the named field value and whether it is present
func (r Record) Field(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// RecordContentType decodes the content type from a record identifier of
// the form "{type}_{digits}". It returns false for anything else and
// never panics.
func RecordContentType(id string) (ContentType, bool) {
	i := strings.IndexByte(id, '_')
	if i <= 0 || i == len(id)-1 {
		return "", false
	}
	ct := ContentType(id[:i])
	if !ct.IsValid() {
		return "", false
	}
	for _, r := range id[i+1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return ct, true
}

// IsValidRecordID reports whether id is a well-formed record identifier.
// It agrees with RecordContentType: valid ids are exactly those that decode.
func IsValidRecordID(id string) bool {
	_, ok := RecordContentType(id)
	return ok
}
