package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/camden-git/policeportal/media"
	"github.com/camden-git/policeportal/models"
	"github.com/camden-git/policeportal/repository"
	"github.com/camden-git/policeportal/validation"
)

// CaseHandler serves the case screens and mutations.
type CaseHandler struct {
	Cases     repository.CaseRepository
	Users     repository.UserRepository
	Validator *validation.Validator
	Evidence  *media.Attachments
	Log       *zap.Logger
}

type caseOptions struct {
	Statuses   []models.CaseStatus   `json:"statuses"`
	Priorities []models.CasePriority `json:"priorities"`
	Categories []models.CaseCategory `json:"categories"`
}

var caseFormOptions = caseOptions{
	Statuses:   models.CaseStatuses,
	Priorities: models.CasePriorities,
	Categories: models.CaseCategories,
}

func caseLocation(id uint) string {
	return fmt.Sprintf("/cases/%d", id)
}

// ListCases handles GET /cases
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	filters := caseFilters(r.URL.Query())
	page, err := h.Cases.List(r.Context(), filters, pageRequest(r))
	if err != nil {
		writeError(w, h.Log, err, "Cases")
		return
	}
	officers, err := h.Users.ListOfficers(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Officers")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cases":    page,
		"officers": officers,
		"filters":  filters,
	})
}

// CreateForm handles GET /cases/create
func (h *CaseHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	officers, err := h.Users.ListOfficers(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Officers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"officers": officers,
		"options":  caseFormOptions,
	})
}

// CreateCase handles POST /cases
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid form data: "+err.Error())
		return
	}

	c, err := h.Validator.ValidateCase(r.Context(), caseInput(r), 0)
	if err != nil {
		writeError(w, h.Log, err, "Case")
		return
	}
	c.CreatedBy = CurrentUser(r.Context()).ID

	stored, err := h.Evidence.StoreUploads(formFiles(r, "evidence_files"))
	if err != nil {
		h.Evidence.Remove(stored)
		writeError(w, h.Log, err, "Evidence")
		return
	}
	c.EvidenceFiles = stored

	if err := h.Cases.Create(r.Context(), c); err != nil {
		h.Evidence.Remove(stored)
		writeError(w, h.Log, err, "Case")
		return
	}

	created, err := h.Cases.GetByID(r.Context(), c.ID)
	if err != nil {
		writeError(w, h.Log, err, "Case")
		return
	}

	h.Log.Info("case created", zap.Uint("case_id", c.ID), zap.Int("evidence_files", len(stored)))
	writeRedirect(w, http.StatusCreated, caseLocation(c.ID), "Case created successfully.", created)
}

// GetCase handles GET /cases/{id}
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"case": c})
}

// EditForm handles GET /cases/{id}/edit
func (h *CaseHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	officers, err := h.Users.ListOfficers(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Officers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"case":     c,
		"officers": officers,
		"options":  caseFormOptions,
	})
}

// UpdateCase handles PUT/PATCH /cases/{id}
func (h *CaseHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid form data: "+err.Error())
		return
	}

	changes, err := h.Validator.ValidateCase(r.Context(), caseInput(r), existing.ID)
	if err != nil {
		writeError(w, h.Log, err, "Case")
		return
	}

	stored, err := h.Evidence.StoreUploads(formFiles(r, "evidence_files"))
	if err != nil {
		h.Evidence.Remove(stored)
		writeError(w, h.Log, err, "Evidence")
		return
	}

	updated, err := h.Cases.Update(r.Context(), existing.ID, changes, submittedFields(r), stored)
	if err != nil {
		h.Evidence.Remove(stored)
		writeError(w, h.Log, err, "Case")
		return
	}

	h.Log.Info("case updated", zap.Uint("case_id", existing.ID), zap.Int("evidence_added", len(stored)))
	writeRedirect(w, http.StatusOK, caseLocation(existing.ID), "Case updated successfully.", updated)
}

// DeleteCase handles DELETE /cases/{id}. Evidence files are removed first;
// a file that cannot be removed does not stop the delete.
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}

	if failed := h.Evidence.Remove(c.EvidenceFiles); failed > 0 {
		h.Log.Warn("case evidence left behind", zap.Uint("case_id", c.ID), zap.Int("failed", failed))
	}

	if err := h.Cases.Delete(r.Context(), c.ID); err != nil {
		writeError(w, h.Log, err, "Case")
		return
	}

	h.Log.Info("case deleted", zap.Uint("case_id", c.ID))
	writeRedirect(w, http.StatusOK, "/cases", "Case deleted successfully.", nil)
}

func (h *CaseHandler) load(w http.ResponseWriter, r *http.Request) (*models.Case, bool) {
	id, ok := idParam(r)
	if !ok {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Case not found")
		return nil, false
	}
	c, err := h.Cases.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err, "Case")
		return nil, false
	}
	return c, true
}
