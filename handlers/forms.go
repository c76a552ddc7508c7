package handlers

import (
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/policeportal/repository"
	"github.com/camden-git/policeportal/validation"
)

// uploads beyond this are spooled to temporary files
const maxFormMemory = 32 << 20

// parseForm reads urlencoded and multipart bodies into r.PostForm.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostForm.Get(key))
}

// submittedFields lists the form keys present in the request body. An update
// only writes these, so a field left out keeps its stored value.
func submittedFields(r *http.Request) []string {
	fields := make([]string, 0, len(r.PostForm))
	for k := range r.PostForm {
		fields = append(fields, k)
	}
	return fields
}

// formFiles returns the uploads sent as field[] or field, in request order.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := append([]*multipart.FileHeader(nil), r.MultipartForm.File[field+"[]"]...)
	return append(files, r.MultipartForm.File[field]...)
}

func caseInput(r *http.Request) validation.CaseInput {
	return validation.CaseInput{
		CaseNumber:        formValue(r, "case_number"),
		Title:             formValue(r, "title"),
		Description:       formValue(r, "description"),
		Status:            formValue(r, "status"),
		Priority:          formValue(r, "priority"),
		Category:          formValue(r, "category"),
		Location:          formValue(r, "location"),
		IncidentDate:      formValue(r, "incident_date"),
		AssignedOfficerID: formValue(r, "assigned_officer_id"),
		EvidenceFiles:     formFiles(r, "evidence_files"),
	}
}

func personnelInput(r *http.Request) validation.PersonnelInput {
	return validation.PersonnelInput{
		BadgeNumber:           formValue(r, "badge_number"),
		FirstName:             formValue(r, "first_name"),
		LastName:              formValue(r, "last_name"),
		Email:                 formValue(r, "email"),
		Phone:                 formValue(r, "phone"),
		Rank:                  formValue(r, "rank"),
		Department:            formValue(r, "department"),
		Status:                formValue(r, "status"),
		HireDate:              formValue(r, "hire_date"),
		Address:               formValue(r, "address"),
		BirthDate:             formValue(r, "birth_date"),
		Gender:                formValue(r, "gender"),
		EmergencyContactName:  formValue(r, "emergency_contact_name"),
		EmergencyContactPhone: formValue(r, "emergency_contact_phone"),
		Notes:                 formValue(r, "notes"),
		Documents:             formFiles(r, "documents"),
	}
}

func caseFilters(q url.Values) repository.CaseFilters {
	return repository.CaseFilters{
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
}

func personnelFilters(q url.Values) repository.PersonnelFilters {
	return repository.PersonnelFilters{
		Status:     q.Get("status"),
		Rank:       q.Get("rank"),
		Department: q.Get("department"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}
}

func pageRequest(r *http.Request) repository.PageRequest {
	q := r.URL.Query()
	return repository.PageRequest{
		Page:  repository.ParsePage(q.Get("page")),
		Path:  r.URL.Path,
		Query: q,
	}
}

// idParam reads the {id} route parameter. ok is false for anything that is
// not a positive integer, which callers treat as not found.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
