package validation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/policeportal/models"
)

// fakeLookup holds "table.column" -> value -> owning id.
type fakeLookup map[string]map[string]uint

func (f fakeLookup) Exists(_ context.Context, table, column string, value any, excludeID uint) (bool, error) {
	id, ok := f[table+"."+column][fmt.Sprint(value)]
	if !ok {
		return false, nil
	}
	return excludeID == 0 || id != excludeID, nil
}

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newValidator(lookup fakeLookup) *Validator {
	return New(lookup, WithClock(func() time.Time { return fixedNow }))
}

func validCase() CaseInput {
	return CaseInput{
		CaseNumber:  "CASE-000123",
		Title:       "Bicycle theft",
		Description: "Bike taken from the rack outside the library.",
		Status:      "open",
		Priority:    "critical",
		Category:    "theft",
	}
}

func validPersonnel() PersonnelInput {
	return PersonnelInput{
		BadgeNumber: "B-1001",
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.org",
		Rank:        "sergeant",
		Department:  "Patrol",
		Status:      "active",
		HireDate:    "2019-06-01",
	}
}

func fileHeaders(t *testing.T, field string, contents ...[]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for i, c := range contents {
		fw, err := mw.CreateFormFile(field, fmt.Sprintf("upload-%d.bin", i))
		require.NoError(t, err)
		_, err = fw.Write(c)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}

func pdfOfSize(n int) []byte {
	b := bytes.Repeat([]byte{' '}, n)
	copy(b, "%PDF-1.7\n")
	return b
}

func asErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.True(t, errors.As(err, &errs), "expected validation.Errors, got %v", err)
	return errs
}

func TestValidateCaseSuccess(t *testing.T) {
	v := newValidator(fakeLookup{"users.id": {"7": 7}})
	in := validCase()
	in.Location = "Main St"
	in.IncidentDate = "2025-03-01T21:30"
	in.AssignedOfficerID = "7"

	c, err := v.ValidateCase(context.Background(), in, 0)
	require.NoError(t, err)
	assert.Equal(t, "CASE-000123", c.CaseNumber)
	assert.Equal(t, models.CaseStatusOpen, c.Status)
	assert.Equal(t, models.CasePriorityCritical, c.Priority)
	assert.Equal(t, models.CaseCategoryTheft, c.Category)
	require.NotNil(t, c.Location)
	assert.Equal(t, "Main St", *c.Location)
	require.NotNil(t, c.IncidentDate)
	assert.Equal(t, time.Date(2025, 3, 1, 21, 30, 0, 0, time.UTC), *c.IncidentDate)
	require.NotNil(t, c.AssignedOfficerID)
	assert.EqualValues(t, 7, *c.AssignedOfficerID)
	assert.Zero(t, c.CreatedBy)
}

func TestValidateCaseRequiredFields(t *testing.T) {
	v := newValidator(fakeLookup{})

	_, err := v.ValidateCase(context.Background(), CaseInput{}, 0)
	errs := asErrors(t, err)

	assert.Equal(t, []string{"Case number is required."}, errs["case_number"])
	assert.Equal(t, []string{"Case title is required."}, errs["title"])
	assert.Equal(t, []string{"Case description is required."}, errs["description"])
	assert.Equal(t, []string{"Case status is required."}, errs["status"])
	assert.Equal(t, []string{"Case priority is required."}, errs["priority"])
	assert.Equal(t, []string{"Case category is required."}, errs["category"])
}

func TestValidateCaseRejectsBadValues(t *testing.T) {
	v := newValidator(fakeLookup{})
	in := validCase()
	in.Status = "pending"
	in.Category = "arson"
	in.IncidentDate = "yesterday-ish"
	in.AssignedOfficerID = "42"
	in.Title = string(bytes.Repeat([]byte("t"), 256))

	_, err := v.ValidateCase(context.Background(), in, 0)
	errs := asErrors(t, err)

	assert.Equal(t, []string{"The selected status is invalid."}, errs["status"])
	assert.Equal(t, []string{"The selected category is invalid."}, errs["category"])
	assert.Equal(t, []string{"Please provide a valid incident date."}, errs["incident_date"])
	assert.Equal(t, []string{"Selected officer does not exist."}, errs["assigned_officer_id"])
	assert.Equal(t, []string{"The title field must not be greater than 255 characters."}, errs["title"])
	assert.NotContains(t, errs, "priority")
}

func TestValidateCaseUniqueCaseNumber(t *testing.T) {
	v := newValidator(fakeLookup{"cases.case_number": {"CASE-000123": 5}})

	_, err := v.ValidateCase(context.Background(), validCase(), 0)
	errs := asErrors(t, err)
	assert.Equal(t, []string{"This case number already exists."}, errs["case_number"])

	// updating the owner of the number is fine
	_, err = v.ValidateCase(context.Background(), validCase(), 5)
	assert.NoError(t, err)

	// another record may not take it
	_, err = v.ValidateCase(context.Background(), validCase(), 6)
	assert.Error(t, err)
}

func TestValidateCaseFileSizeBoundary(t *testing.T) {
	v := newValidator(fakeLookup{})

	in := validCase()
	in.EvidenceFiles = fileHeaders(t, "evidence_files[]", pdfOfSize(10485760))
	_, err := v.ValidateCase(context.Background(), in, 0)
	assert.NoError(t, err)

	in.EvidenceFiles = fileHeaders(t, "evidence_files[]", pdfOfSize(10485761))
	_, err = v.ValidateCase(context.Background(), in, 0)
	errs := asErrors(t, err)
	assert.Equal(t, []string{"Evidence files must not exceed 10MB."}, errs["evidence_files.0"])
}

func TestValidateCaseFileKind(t *testing.T) {
	v := newValidator(fakeLookup{})

	in := validCase()
	in.EvidenceFiles = fileHeaders(t, "evidence_files[]",
		[]byte("witness statement, plain text"),
		[]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"),
	)
	_, err := v.ValidateCase(context.Background(), in, 0)
	errs := asErrors(t, err)

	assert.NotContains(t, errs, "evidence_files.0")
	assert.Equal(t, []string{"Evidence files must be PDF, DOC, DOCX, JPG, JPEG, PNG, or TXT files."}, errs["evidence_files.1"])
}

func TestValidatePersonnelSuccess(t *testing.T) {
	v := newValidator(fakeLookup{})
	in := validPersonnel()
	in.Gender = "female"
	in.Phone = "555-0100"

	p, err := v.ValidatePersonnel(context.Background(), in, 0)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName())
	assert.Equal(t, models.RankSergeant, p.Rank)
	assert.Equal(t, time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), time.Time(p.HireDate))
	require.NotNil(t, p.Gender)
	assert.Equal(t, models.GenderFemale, *p.Gender)
	assert.Nil(t, p.BirthDate)
	assert.Nil(t, p.Address)
}

func TestValidatePersonnelBirthDate(t *testing.T) {
	v := newValidator(fakeLookup{})

	in := validPersonnel()
	in.BirthDate = "2025-03-14"
	_, err := v.ValidatePersonnel(context.Background(), in, 0)
	errs := asErrors(t, err)
	assert.Equal(t, []string{"Birth date must be before today."}, errs["birth_date"])

	in.BirthDate = "2025-03-13"
	p, err := v.ValidatePersonnel(context.Background(), in, 0)
	require.NoError(t, err)
	require.NotNil(t, p.BirthDate)

	in.BirthDate = "not a date"
	_, err = v.ValidatePersonnel(context.Background(), in, 0)
	errs = asErrors(t, err)
	assert.Equal(t, []string{"Please provide a valid birth date."}, errs["birth_date"])
}

func TestValidatePersonnelMessages(t *testing.T) {
	v := newValidator(fakeLookup{
		"personnel.badge_number": {"B-1001": 1},
		"personnel.email":        {"jane.doe@example.org": 1},
	})

	_, err := v.ValidatePersonnel(context.Background(), validPersonnel(), 0)
	errs := asErrors(t, err)
	assert.Equal(t, []string{"This badge number already exists."}, errs["badge_number"])
	assert.Equal(t, []string{"This email is already registered."}, errs["email"])

	_, err = v.ValidatePersonnel(context.Background(), validPersonnel(), 1)
	assert.NoError(t, err)

	in := validPersonnel()
	in.Email = "not-an-email"
	in.Status = ""
	in.Rank = "general"
	in.Gender = "unknown"
	_, err = v.ValidatePersonnel(context.Background(), in, 0)
	errs = asErrors(t, err)
	assert.Equal(t, []string{"Please provide a valid email address."}, errs["email"])
	assert.Equal(t, []string{"Employment status is required."}, errs["status"])
	assert.Equal(t, []string{"The selected rank is invalid."}, errs["rank"])
	assert.Equal(t, []string{"The selected gender is invalid."}, errs["gender"])
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-02-29", "2024-02-29T08:15", "2024-02-29 08:15:00", "2024-02-29T08:15:00Z", "02/29/2024"} {
		d, err := ParseDate(s, time.UTC)
		require.NoError(t, err, s)
		assert.Equal(t, 29, d.Day(), s)
	}
	_, err := ParseDate("2023-02-29", time.UTC)
	assert.Error(t, err)
}
