// pkg/model/title.go
package model

// RawColumns is the fixed 12-column header of the Netflix titles CSV, in
// file order. The raw table uses the same names and order.
var RawColumns = []string{
	"show_id",
	"type",
	"title",
	"director",
	"cast",
	"country",
	"date_added",
	"release_year",
	"rating",
	"duration",
	"listed_in",
	"description",
}

// Title is one record of the titles CSV as extracted, before any database
// side transformation. Every field is the raw string from the file; an empty
// string means the field was empty in the file and loads as NULL.
type Title struct {
	ShowID      string
	Type        string
	Title       string
	Director    string
	Cast        string
	Country     string
	DateAdded   string
	ReleaseYear string
	Rating      string
	Duration    string
	ListedIn    string
	Description string
}

// TitleFromRecord builds a Title from a CSV record in RawColumns order.
// The caller is responsible for checking the record length first.
func TitleFromRecord(record []string) Title {
	return Title{
		ShowID:      record[0],
		Type:        record[1],
		Title:       record[2],
		Director:    record[3],
		Cast:        record[4],
		Country:     record[5],
		DateAdded:   record[6],
		ReleaseYear: record[7],
		Rating:      record[8],
		Duration:    record[9],
		ListedIn:    record[10],
		Description: record[11],
	}
}

// Fields returns the record values in RawColumns order. Empty strings are
// returned as nil so the loader writes NULL instead of ''.
func (t Title) Fields() []interface{} {
	raw := []string{
		t.ShowID,
		t.Type,
		t.Title,
		t.Director,
		t.Cast,
		t.Country,
		t.DateAdded,
		t.ReleaseYear,
		t.Rating,
		t.Duration,
		t.ListedIn,
		t.Description,
	}

	fields := make([]interface{}, len(raw))
	for i, v := range raw {
		if v == "" {
			fields[i] = nil
			continue
		}
		fields[i] = v
	}
	return fields
}

// Field returns the value of the named raw column, and whether the name is a
// known column.
func (t Title) Field(column string) (string, bool) {
	switch column {
	case "show_id":
		return t.ShowID, true
	case "type":
		return t.Type, true
	case "title":
		return t.Title, true
	case "director":
		return t.Director, true
	case "cast":
		return t.Cast, true
	case "country":
		return t.Country, true
	case "date_added":
		return t.DateAdded, true
	case "release_year":
		return t.ReleaseYear, true
	case "rating":
		return t.Rating, true
	case "duration":
		return t.Duration, true
	case "listed_in":
		return t.ListedIn, true
	case "description":
		return t.Description, true
	default:
		return "", false
	}
}

// SetField sets the named raw column and reports whether the name is a known
// column. Used by the cleaner, which works column-by-column.
func (t *Title) SetField(column, value string) bool {
	switch column {
	case "show_id":
		t.ShowID = value
	case "type":
		t.Type = value
	case "title":
		t.Title = value
	case "director":
		t.Director = value
	case "cast":
		t.Cast = value
	case "country":
		t.Country = value
	case "date_added":
		t.DateAdded = value
	case "release_year":
		t.ReleaseYear = value
	case "rating":
		t.Rating = value
	case "duration":
		t.Duration = value
	case "listed_in":
		t.ListedIn = value
	case "description":
		t.Description = value
	default:
		return false
	}
	return true
}
