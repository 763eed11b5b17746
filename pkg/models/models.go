package models

import "strings"

// CandidateSource identifies which heuristic produced an extraction candidate.
type CandidateSource string

const (
	SourceMainHeading    CandidateSource = "main_heading"
	SourceBreadcrumb     CandidateSource = "breadcrumb"
	SourcePageTitle      CandidateSource = "page_title"
	SourceDirectionsLink CandidateSource = "directions_link"
	SourceContentText    CandidateSource = "content_text"
	SourceTelLink        CandidateSource = "tel_link"
	SourceMailtoLink     CandidateSource = "mailto_link"
	SourceServiceCueList CandidateSource = "service_cue_list"
	SourceFallbackList   CandidateSource = "fallback_list"
)

// Candidate is one possible value for a record field, produced by a single
// heuristic rule. Confidence is the rule's priority rank (lower is better);
// DocOrder is the element's document-order index, used for tie-breaks and
// for the email proximity rule.
type Candidate struct {
	Value      string
	Confidence int
	Source     CandidateSource
	DocOrder   int
}

// ClinicRecord is the structured result of extracting one clinic page.
// Absent fields stay empty; nothing is ever defaulted or fabricated.
// Records are immutable once assembled.
type ClinicRecord struct {
	URL      string   `json:"original_url"`
	Name     string   `json:"name,omitempty"`
	Address  string   `json:"address,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Services []string `json:"services,omitempty"`
}

// Complete reports whether all critical fields (name, address, phone) are
// present. Email and services are nice-to-have.
func (r ClinicRecord) Complete() bool {
	return r.Name != "" && r.Address != "" && r.Phone != ""
}

// MissingFields lists the names of empty fields, critical or not,
// in a fixed order for stable reporting.
func (r ClinicRecord) MissingFields() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Address == "" {
		missing = append(missing, "address")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(r.Services) == 0 {
		missing = append(missing, "services")
	}
	return missing
}

// DedupKey returns a normalized (name, address) pair so the same clinic
// reached via multiple paths collapses to one record.
func (r ClinicRecord) DedupKey() string {
	return normalizeForDedup(r.Name) + "\x00" + normalizeForDedup(r.Address)
}

// FieldCount is a simple richness score used when merging duplicate records:
// the one carrying more non-empty fields wins.
func (r ClinicRecord) FieldCount() int {
	count := 0
	if r.Name != "" {
		count++
	}
	if r.Address != "" {
		count++
	}
	if r.Email != "" {
		count++
	}
	if r.Phone != "" {
		count++
	}
	if len(r.Services) > 0 {
		count++
	}
	return count
}

func normalizeForDedup(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
