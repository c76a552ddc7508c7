// Package validation gates every case and personnel mutation. Rule sets are
// declared as struct tags; checks that need the database (uniqueness,
// existence) or file contents run after the tag rules.
package validation

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/camden-git/policeportal/media"
	"github.com/camden-git/policeportal/models"
)

// Lookup answers uniqueness and existence questions. excludeID skips the
// record being updated; 0 skips nothing.
type Lookup interface {
	Exists(ctx context.Context, table, column string, value any, excludeID uint) (bool, error)
}

// CaseInput is the allow-listed case payload. Fields not listed here are
// never read from a request.
type CaseInput struct {
	CaseNumber        string                  `form:"case_number" validate:"required,max=255"`
	Title             string                  `form:"title" validate:"required,max=255"`
	Description       string                  `form:"description" validate:"required"`
	Status            string                  `form:"status" validate:"required,case_status"`
	Priority          string                  `form:"priority" validate:"required,case_priority"`
	Category          string                  `form:"category" validate:"required,case_category"`
	Location          string                  `form:"location" validate:"omitempty,max=255"`
	IncidentDate      string                  `form:"incident_date" validate:"omitempty,date"`
	AssignedOfficerID string                  `form:"assigned_officer_id" validate:"omitempty,number"`
	EvidenceFiles     []*multipart.FileHeader `form:"evidence_files" validate:"-"`
}

// PersonnelInput is the allow-listed personnel payload.
type PersonnelInput struct {
	BadgeNumber           string                  `form:"badge_number" validate:"required,max=255"`
	FirstName             string                  `form:"first_name" validate:"required,max=255"`
	LastName              string                  `form:"last_name" validate:"required,max=255"`
	Email                 string                  `form:"email" validate:"required,email,max=255"`
	Phone                 string                  `form:"phone" validate:"omitempty,max=20"`
	Rank                  string                  `form:"rank" validate:"required,rank"`
	Department            string                  `form:"department" validate:"required,max=255"`
	Status                string                  `form:"status" validate:"required,personnel_status"`
	HireDate              string                  `form:"hire_date" validate:"required,date"`
	Address               string                  `form:"address"`
	BirthDate             string                  `form:"birth_date" validate:"omitempty,date,before_today"`
	Gender                string                  `form:"gender" validate:"omitempty,gender"`
	EmergencyContactName  string                  `form:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone string                  `form:"emergency_contact_phone" validate:"omitempty,max=20"`
	Notes                 string                  `form:"notes"`
	Documents             []*multipart.FileHeader `form:"documents" validate:"-"`
}

type Option func(*Validator)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

type Validator struct {
	validate *validator.Validate
	lookup   Lookup
	now      func() time.Time
}

func New(lookup Lookup, opts ...Option) *Validator {
	v := &Validator{lookup: lookup, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	v.validate = validator.New(validator.WithRequiredStructEnabled())
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"case_status":      stringRule(func(s string) bool { return models.CaseStatus(s).Valid() }),
		"case_priority":    stringRule(func(s string) bool { return models.CasePriority(s).Valid() }),
		"case_category":    stringRule(func(s string) bool { return models.CaseCategory(s).Valid() }),
		"rank":             stringRule(func(s string) bool { return models.Rank(s).Valid() }),
		"personnel_status": stringRule(func(s string) bool { return models.PersonnelStatus(s).Valid() }),
		"gender":           stringRule(func(s string) bool { return models.Gender(s).Valid() }),
		"date": stringRule(func(s string) bool {
			_, err := ParseDate(s, v.now().Location())
			return err == nil
		}),
		"before_today": stringRule(func(s string) bool {
			t, err := ParseDate(s, v.now().Location())
			return err == nil && t.Before(v.today())
		}),
	}
	for tag, fn := range rules {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: registering %s: %v", tag, err))
		}
	}
	return v
}

func stringRule(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	}
}

// today is midnight at the start of the current day.
func (v *Validator) today() time.Time {
	now := v.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"01/02/2006",
}

// ParseDate accepts the date and date-time formats browsers and API
// clients send. Values without a zone are read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date '%s'", value)
}

// checkStruct runs the tag rules and records one message per failing field.
func (v *Validator) checkStruct(in any, custom map[string]string, errs Errors) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(custom, fe.Field(), fe.Tag(), fe.Param()))
	}
	return nil
}

func (v *Validator) checkUnique(ctx context.Context, table, field, value string, excludeID uint, custom map[string]string, errs Errors) error {
	if value == "" || errs.Has(field) {
		return nil
	}
	taken, err := v.lookup.Exists(ctx, table, field, value, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	if taken {
		errs.Add(field, message(custom, field, "unique", ""))
	}
	return nil
}

// checkFiles applies the attachment rules to each upload, keyed by index.
func checkFiles(field string, files []*multipart.FileHeader, custom map[string]string, errs Errors) {
	rule := field + ".*"
	for i, fh := range files {
		key := field + "." + strconv.Itoa(i)
		if fh == nil {
			errs.Add(key, message(custom, rule, "file", ""))
			continue
		}

		ok, err := allowedKind(fh)
		switch {
		case err != nil:
			errs.Add(key, message(custom, rule, "file", ""))
			continue
		case !ok:
			errs.Add(key, message(custom, rule, "mimes", ""))
		}
		if fh.Size > media.MaxUploadSize {
			errs.Add(key, message(custom, rule, "max", strconv.FormatInt(media.MaxUploadSize/1024, 10)))
		}
	}
}

// allowedKind sniffs the upload's content and checks the detected kind
// against the accepted extensions.
func allowedKind(fh *multipart.FileHeader) (bool, error) {
	f, err := fh.Open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	mt, _, err := media.DetectMIME(f)
	if err != nil {
		return false, err
	}
	return slices.Contains(media.AllowedExtensions, mt.Extension()), nil
}

// ValidateCase checks a case payload. excludeID is the case being updated,
// or 0 on create. On failure the returned error is Errors.
func (v *Validator) ValidateCase(ctx context.Context, in CaseInput, excludeID uint) (*models.Case, error) {
	errs := Errors{}
	if err := v.checkStruct(in, caseMessages, errs); err != nil {
		return nil, err
	}
	if err := v.checkUnique(ctx, "cases", "case_number", in.CaseNumber, excludeID, caseMessages, errs); err != nil {
		return nil, err
	}

	var officerID *uint
	if in.AssignedOfficerID != "" && !errs.Has("assigned_officer_id") {
		id, err := strconv.ParseUint(in.AssignedOfficerID, 10, 0)
		exists := false
		if err == nil {
			if exists, err = v.lookup.Exists(ctx, "users", "id", uint(id), 0); err != nil {
				return nil, fmt.Errorf("failed to check assigned officer: %w", err)
			}
		}
		if exists {
			u := uint(id)
			officerID = &u
		} else {
			errs.Add("assigned_officer_id", message(caseMessages, "assigned_officer_id", "exists", ""))
		}
	}

	checkFiles("evidence_files", in.EvidenceFiles, caseMessages, errs)
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	c := &models.Case{
		CaseNumber:        in.CaseNumber,
		Title:             in.Title,
		Description:       in.Description,
		Status:            models.CaseStatus(in.Status),
		Priority:          models.CasePriority(in.Priority),
		Category:          models.CaseCategory(in.Category),
		Location:          optional(in.Location),
		AssignedOfficerID: officerID,
	}
	if in.IncidentDate != "" {
		t, _ := ParseDate(in.IncidentDate, v.now().Location())
		c.IncidentDate = &t
	}
	return c, nil
}

// ValidatePersonnel checks a personnel payload. excludeID is the record
// being updated, or 0 on create. On failure the returned error is Errors.
func (v *Validator) ValidatePersonnel(ctx context.Context, in PersonnelInput, excludeID uint) (*models.Personnel, error) {
	errs := Errors{}
	if err := v.checkStruct(in, personnelMessages, errs); err != nil {
		return nil, err
	}
	if err := v.checkUnique(ctx, "personnel", "badge_number", in.BadgeNumber, excludeID, personnelMessages, errs); err != nil {
		return nil, err
	}
	if err := v.checkUnique(ctx, "personnel", "email", in.Email, excludeID, personnelMessages, errs); err != nil {
		return nil, err
	}

	checkFiles("documents", in.Documents, personnelMessages, errs)
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	loc := v.now().Location()
	hired, _ := ParseDate(in.HireDate, loc)
	p := &models.Personnel{
		BadgeNumber:           in.BadgeNumber,
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Email:                 in.Email,
		Phone:                 optional(in.Phone),
		Rank:                  models.Rank(in.Rank),
		Department:            in.Department,
		Status:                models.PersonnelStatus(in.Status),
		HireDate:              datatypes.Date(hired),
		Address:               optional(in.Address),
		EmergencyContactName:  optional(in.EmergencyContactName),
		EmergencyContactPhone: optional(in.EmergencyContactPhone),
		Notes:                 optional(in.Notes),
	}
	if in.BirthDate != "" {
		born, _ := ParseDate(in.BirthDate, loc)
		d := datatypes.Date(born)
		p.BirthDate = &d
	}
	if in.Gender != "" {
		g := models.Gender(in.Gender)
		p.Gender = &g
	}
	return p, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
