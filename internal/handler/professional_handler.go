package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-management-api/internal/model"
)

type professionalRequest struct {
	Name               string   `json:"name" validate:"required"`
	Type               string   `json:"type" validate:"required"`
	RegistrationNumber string   `json:"registrationNumber" validate:"required"`
	Specialty          string   `json:"specialty"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email" validate:"omitempty,email"`
	StartTime          string   `json:"startTime"`
	EndTime            string   `json:"endTime"`
	AttendanceDays     []string `json:"attendanceDays"`
	Notes              string   `json:"notes"`
	Status             string   `json:"status"`
}

func (h *Handler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	writeJSON(w, http.StatusOK, s.Professionals.List(r.Context()))
}

func (h *Handler) GetProfessional(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	p := s.Professionals.GetByID(r.Context(), chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req professionalRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name, type and registrationNumber are required")
		return
	}

	s := h.session(r)
	p := s.Professionals.Create(r.Context(), model.Professional{
		Name:               req.Name,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		Specialty:          req.Specialty,
		Phone:              req.Phone,
		Email:              req.Email,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		AttendanceDays:     req.AttendanceDays,
		Notes:              req.Notes,
		Status:             req.Status,
	})
	if p == nil {
		writeError(w, http.StatusBadRequest, "could not create professional")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfessionalPatch
	if err := h.decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s := h.session(r)
	p := s.Professionals.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if p == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if !s.Professionals.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
