package report

import (
	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

// Outcome is the validation verdict for a single record.
type Outcome struct {
	Complete bool
	Missing  []string // Field names, critical or not, in fixed order
}

// Validate classifies a record as complete/incomplete and names its gaps.
// Critical fields are name, address, and phone; email and services only
// show up in the missing list, never in the completeness verdict.
func Validate(record models.ClinicRecord) Outcome {
	return Outcome{
		Complete: record.Complete(),
		Missing:  record.MissingFields(),
	}
}

// Report accumulates per-field missing counts across every record in a run,
// for the end-of-crawl summary.
type Report struct {
	TotalRecords      int
	IncompleteRecords int
	MissingName       int
	MissingAddress    int
	MissingEmail      int
	MissingPhone      int
	MissingServices   int
}

// Add folds one record into the aggregate tallies.
func (r *Report) Add(record models.ClinicRecord) Outcome {
	outcome := Validate(record)

	r.TotalRecords++
	if !outcome.Complete {
		r.IncompleteRecords++
	}
	for _, field := range outcome.Missing {
		switch field {
		case "name":
			r.MissingName++
		case "address":
			r.MissingAddress++
		case "email":
			r.MissingEmail++
		case "phone":
			r.MissingPhone++
		case "services":
			r.MissingServices++
		}
	}
	return outcome
}

// CompleteRecords returns the number of records with all critical fields.
func (r *Report) CompleteRecords() int {
	return r.TotalRecords - r.IncompleteRecords
}
