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

// PersonnelHandler serves the personnel screens and mutations.
type PersonnelHandler struct {
	Personnel repository.PersonnelRepository
	Validator *validation.Validator
	Documents *media.Attachments
	Log       *zap.Logger
}

type personnelOptions struct {
	Ranks    []models.Rank            `json:"ranks"`
	Statuses []models.PersonnelStatus `json:"statuses"`
	Genders  []models.Gender          `json:"genders"`
}

var personnelFormOptions = personnelOptions{
	Ranks:    models.Ranks,
	Statuses: models.PersonnelStatuses,
	Genders:  models.Genders,
}

func personnelLocation(id uint) string {
	return fmt.Sprintf("/personnel/%d", id)
}

func (h *PersonnelHandler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	filters := personnelFilters(r.URL.Query())
	page, err := h.Personnel.List(r.Context(), filters, pageRequest(r))
	if err != nil {
		writeError(w, h.Log, err, "Personnel")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"personnel": page,
		"filters":   filters,
	})
}

func (h *PersonnelHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"options": personnelFormOptions})
}

func (h *PersonnelHandler) CreatePersonnel(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid form data: "+err.Error())
		return
	}

	p, err := h.Validator.ValidatePersonnel(r.Context(), personnelInput(r), 0)
	if err != nil {
		writeError(w, h.Log, err, "Personnel")
		return
	}

	stored, err := h.Documents.StoreUploads(formFiles(r, "documents"))
	if err != nil {
		h.Documents.Remove(stored)
		writeError(w, h.Log, err, "Documents")
		return
	}
	p.Documents = stored

	if err := h.Personnel.Create(r.Context(), p); err != nil {
		h.Documents.Remove(stored)
		writeError(w, h.Log, err, "Personnel")
		return
	}

	h.Log.Info("personnel created", zap.Uint("personnel_id", p.ID), zap.Int("documents", len(stored)))
	writeRedirect(w, http.StatusCreated, personnelLocation(p.ID), "Personnel record created successfully.", p)
}

func (h *PersonnelHandler) GetPersonnel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"personnel": p})
}

func (h *PersonnelHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"personnel": p,
		"options":   personnelFormOptions,
	})
}

func (h *PersonnelHandler) UpdatePersonnel(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid form data: "+err.Error())
		return
	}

	changes, err := h.Validator.ValidatePersonnel(r.Context(), personnelInput(r), existing.ID)
	if err != nil {
		writeError(w, h.Log, err, "Personnel")
		return
	}

	stored, err := h.Documents.StoreUploads(formFiles(r, "documents"))
	if err != nil {
		h.Documents.Remove(stored)
		writeError(w, h.Log, err, "Documents")
		return
	}

	updated, err := h.Personnel.Update(r.Context(), existing.ID, changes, submittedFields(r), stored)
	if err != nil {
		h.Documents.Remove(stored)
		writeError(w, h.Log, err, "Personnel")
		return
	}

	h.Log.Info("personnel updated", zap.Uint("personnel_id", existing.ID), zap.Int("documents_added", len(stored)))
	writeRedirect(w, http.StatusOK, personnelLocation(existing.ID), "Personnel record updated successfully.", updated)
}

func (h *PersonnelHandler) DeletePersonnel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	if failed := h.Documents.Remove(p.Documents); failed > 0 {
		h.Log.Warn("personnel documents left behind", zap.Uint("personnel_id", p.ID), zap.Int("failed", failed))
	}

	if err := h.Personnel.Delete(r.Context(), p.ID); err != nil {
		writeError(w, h.Log, err, "Personnel")
		return
	}

	h.Log.Info("personnel deleted", zap.Uint("personnel_id", p.ID))
	writeRedirect(w, http.StatusOK, "/personnel", "Personnel record deleted successfully.", nil)
}

func (h *PersonnelHandler) load(w http.ResponseWriter, r *http.Request) (*models.Personnel, bool) {
	id, ok := idParam(r)
	if !ok {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Personnel not found")
		return nil, false
	}
	p, err := h.Personnel.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err, "Personnel")
		return nil, false
	}
	return p, true
}
