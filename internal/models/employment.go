package models

import "strings"

// Recognized employment statuses. Anything else coming in from an import or
// an old row collapses to EmploymentUnknown exactly once, at the boundary,
// so dashboards never have to guess at legacy spellings.
const (
	EmploymentEmployed     = "employed"
	EmploymentSelfEmployed = "self-employed"
	EmploymentUnemployed   = "unemployed"
	EmploymentStudying     = "studying"
	EmploymentUnknown      = "unknown"
)

var employmentSynonyms = map[string]string{
	"employed":           EmploymentEmployed,
	"employed full-time": EmploymentEmployed,
	"employed part-time": EmploymentEmployed,
	"working":            EmploymentEmployed,
	"full-time":          EmploymentEmployed,
	"part-time":          EmploymentEmployed,
	"self-employed":      EmploymentSelfEmployed,
	"self employed":      EmploymentSelfEmployed,
	"selfemployed":       EmploymentSelfEmployed,
	"freelance":          EmploymentSelfEmployed,
	"freelancer":         EmploymentSelfEmployed,
	"business owner":     EmploymentSelfEmployed,
	"entrepreneur":       EmploymentSelfEmployed,
	"unemployed":         EmploymentUnemployed,
	"not employed":       EmploymentUnemployed,
	"looking for work":   EmploymentUnemployed,
	"job seeking":        EmploymentUnemployed,
	"studying":           EmploymentStudying,
	"student":            EmploymentStudying,
	"further studies":    EmploymentStudying,
	"graduate school":    EmploymentStudying,
	"masters":            EmploymentStudying,
	"phd":                EmploymentStudying,
}

// NormalizeEmploymentStatus maps any spelling seen in imports or legacy rows
// onto one of the recognized statuses.
func NormalizeEmploymentStatus(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return EmploymentUnknown
	}
	if s, ok := employmentSynonyms[key]; ok {
		return s
	}
	return EmploymentUnknown
}
