package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

func TestValidate(t *testing.T) {
	complete := models.ClinicRecord{
		Name:    "Example Clinic",
		Address: "123 Main Rd, Brisbane QLD",
		Phone:   "0712345678",
	}
	outcome := Validate(complete)
	assert.True(t, outcome.Complete)
	assert.Equal(t, []string{"email", "services"}, outcome.Missing)

	incomplete := models.ClinicRecord{Name: "Example Clinic"}
	outcome = Validate(incomplete)
	assert.False(t, outcome.Complete)
	assert.Equal(t, []string{"address", "email", "phone", "services"}, outcome.Missing)
}

func TestReport_Add(t *testing.T) {
	var r Report

	r.Add(models.ClinicRecord{
		Name:     "A",
		Address:  "1 X Rd QLD",
		Phone:    "07",
		Email:    "a@x.com",
		Services: []string{"s"},
	})
	// Page with neither tel: nor directions anchors: missing phone and address both tick up
	r.Add(models.ClinicRecord{Name: "B", Email: "b@x.com"})
	r.Add(models.ClinicRecord{})

	assert.Equal(t, 3, r.TotalRecords)
	assert.Equal(t, 2, r.IncompleteRecords)
	assert.Equal(t, 1, r.CompleteRecords())
	assert.Equal(t, 1, r.MissingName)
	assert.Equal(t, 2, r.MissingAddress)
	assert.Equal(t, 2, r.MissingPhone)
	assert.Equal(t, 1, r.MissingEmail)
	assert.Equal(t, 2, r.MissingServices)
}
