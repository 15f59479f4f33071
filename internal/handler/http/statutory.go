package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

type StatutoryHandler interface {
	CreateBenefitConfig(w http.ResponseWriter, r *http.Request)
	ListBenefitConfigs(w http.ResponseWriter, r *http.Request)
	SetBenefitConfigActive(w http.ResponseWriter, r *http.Request)

	CreateTaxConfig(w http.ResponseWriter, r *http.Request)
	ListTaxConfigs(w http.ResponseWriter, r *http.Request)
	SetTaxConfigActive(w http.ResponseWriter, r *http.Request)
}

type statutoryHandlerImpl struct {
	statutoryService statutory.StatutoryService
}

func NewStatutoryHandler(statutoryService statutory.StatutoryService) StatutoryHandler {
	return &statutoryHandlerImpl{
		statutoryService: statutoryService,
	}
}

// CreateBenefitConfig implements StatutoryHandler.
func (h *statutoryHandlerImpl) CreateBenefitConfig(w http.ResponseWriter, r *http.Request) {
	var req statutory.CreateBenefitConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create benefit config decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.statutoryService.CreateBenefitConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Benefit config created successfully", cfg)
}

// ListBenefitConfigs implements StatutoryHandler.
func (h *statutoryHandlerImpl) ListBenefitConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.statutoryService.ListBenefitConfigs(r.Context(), r.URL.Query().Get("benefit_type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, configs)
}

// SetBenefitConfigActive implements StatutoryHandler.
func (h *statutoryHandlerImpl) SetBenefitConfigActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Config ID is required", nil)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Set benefit config active decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.statutoryService.SetBenefitConfigActive(r.Context(), id, req.Active); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Benefit config updated", nil)
}

// CreateTaxConfig implements StatutoryHandler.
func (h *statutoryHandlerImpl) CreateTaxConfig(w http.ResponseWriter, r *http.Request) {
	var req statutory.CreateTaxConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create tax config decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.statutoryService.CreateTaxConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tax config created successfully", cfg)
}

// ListTaxConfigs implements StatutoryHandler.
func (h *statutoryHandlerImpl) ListTaxConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.statutoryService.ListTaxConfigs(r.Context(), r.URL.Query().Get("tax_type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, configs)
}

// SetTaxConfigActive implements StatutoryHandler.
func (h *statutoryHandlerImpl) SetTaxConfigActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Config ID is required", nil)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Set tax config active decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.statutoryService.SetTaxConfigActive(r.Context(), id, req.Active); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tax config updated", nil)
}
