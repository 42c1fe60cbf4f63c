package analysis

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/kpi-atlas/pkg/adapters"
	"github.com/de-tools/kpi-atlas/pkg/models/api"
	"github.com/de-tools/kpi-atlas/pkg/services/analysis"
)

type Handler struct {
	svc analysis.Service
}

func NewHandler(svc analysis.Service) *Handler {
	return &Handler{svc: svc}
}

// RunAnalysis executes one diagnostic run for the company and metrics in the
// request body and returns the full report.
func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var request api.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, ok := adapters.MapCompanyApiToDomain(request.Company)
	if !ok {
		http.Error(w, "invalid company period, expected monthly/quarterly/annual", http.StatusBadRequest)
		return
	}

	report := h.svc.Run(ctx, profile, request.Metrics)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(report)); err != nil {
		logger.Error().Err(err).Msg("failed to encode analysis report")
	}
}

// ListKPIs returns the KPI catalog the engine is configured with.
func (h *Handler) ListKPIs(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := make([]api.KPI, 0)
	for _, def := range h.svc.KPIs() {
		response = append(response, adapters.MapKPIDefDomainToApi(def))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode kpi list")
	}
}

// ListRules returns the identifiers and formulas of the active validation
// rules, for operator visibility.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	type ruleInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Formula  string `json:"formula"`
		Severity string `json:"severity"`
		Active   bool   `json:"active"`
	}

	response := make([]ruleInfo, 0)
	for _, rule := range h.svc.ValidationRules() {
		response = append(response, ruleInfo{
			ID:       rule.ID,
			Name:     rule.Name,
			Formula:  rule.Formula,
			Severity: string(rule.Severity),
			Active:   rule.Active,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode rule list")
	}
}
