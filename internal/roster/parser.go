// Package roster parses uploaded alumni roster files. Rosters come from
// registrar offices in whatever shape their spreadsheet exported: comma,
// semicolon or tab separated, with a wide range of header spellings. The
// parser is pure and deterministic; an unusable file yields an empty slice
// rather than an error so the caller can show a specific message.
package roster

import (
	"strconv"
	"strings"
)

// Record is one roster row: the alumnus name as written in the file plus the
// graduation year. Records are transient and never persisted.
type Record struct {
	FullName string
	Year     int
}

var (
	firstNameHeaders = []string{"first name", "firstname", "first", "given name", "givenname"}
	lastNameHeaders  = []string{"last name", "lastname", "last", "surname", "family name", "familyname"}
	fullNameHeaders  = []string{"full name", "fullname", "name", "student name", "alumni name", "alumnus name", "graduate name"}
	yearHeaders      = []string{
		"year graduated", "graduation year", "grad year", "gradyear", "year of graduation",
		"batch", "batch year", "year", "yeargraduated", "graduating year",
		"passing year", "year of passing", "class of", "class",
	}
)

// Parse turns raw roster text into records, in input order. It returns the
// number of data rows dropped for being too short, missing a name, or
// carrying a year that does not parse. A file with no resolvable columns
// parses to an empty slice with zero skipped.
func Parse(text string) ([]Record, int) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, 0
	}

	header := lines[0]
	delim := inferDelimiter(header)
	cols := splitFields(header, delim)

	firstIdx := findColumn(cols, firstNameHeaders)
	lastIdx := findColumn(cols, lastNameHeaders)
	fullIdx := findColumn(cols, fullNameHeaders)
	yearIdx := findColumn(cols, yearHeaders)

	// A year column is mandatory; names need either a full-name column or
	// both first and last. Incomplete headers make the whole file unusable.
	if yearIdx < 0 {
		return nil, 0
	}
	if fullIdx < 0 && (firstIdx < 0 || lastIdx < 0) {
		return nil, 0
	}

	maxIdx := yearIdx
	if fullIdx >= 0 {
		if fullIdx > maxIdx {
			maxIdx = fullIdx
		}
	} else {
		if firstIdx > maxIdx {
			maxIdx = firstIdx
		}
		if lastIdx > maxIdx {
			maxIdx = lastIdx
		}
	}

	var records []Record
	var skipped int
	for _, line := range lines[1:] {
		fields := splitFields(line, delim)
		if len(fields) <= maxIdx {
			skipped++
			continue
		}

		var name string
		if fullIdx >= 0 {
			name = fields[fullIdx]
		} else {
			name = strings.TrimSpace(fields[firstIdx] + " " + fields[lastIdx])
		}
		name = strings.TrimSpace(name)

		year, err := strconv.Atoi(strings.TrimSpace(fields[yearIdx]))
		if name == "" || err != nil {
			skipped++
			continue
		}
		records = append(records, Record{FullName: name, Year: year})
	}
	return records, skipped
}

func splitLines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(strings.TrimSuffix(ln, "\r"))
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// inferDelimiter prefers semicolon or tab only when the header carries no
// comma at all; comma is the default.
func inferDelimiter(header string) string {
	switch {
	case strings.Contains(header, ";") && !strings.Contains(header, ","):
		return ";"
	case strings.Contains(header, "\t") && !strings.Contains(header, ","):
		return "\t"
	default:
		return ","
	}
}

// splitFields is a deliberate non-RFC-4180 split: fields are separated on the
// raw delimiter, trimmed, and stripped of one leading/trailing double quote.
// Embedded delimiters or escaped quotes inside fields are not supported.
func splitFields(line, delim string) []string {
	parts := strings.Split(line, delim)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, `"`)
		p = strings.TrimSuffix(p, `"`)
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func findColumn(cols []string, synonyms []string) int {
	for i, c := range cols {
		lc := strings.ToLower(strings.TrimSpace(c))
		for _, s := range synonyms {
			if lc == s {
				return i
			}
		}
	}
	return -1
}
