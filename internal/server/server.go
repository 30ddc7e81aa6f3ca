// Package server implements the form-based web front end. It serves the
// embedded form page and a small JSON API; each evaluate request performs
// exactly one underwriting round, and save requests re-run the evaluation
// server-side so only approved configurations can ever be persisted.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/iwvelando/loan-underwriter/internal/underwriting"
	"github.com/iwvelando/loan-underwriter/pkg/format"
	"github.com/iwvelando/loan-underwriter/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger  *zap.Logger
	catalog *underwriting.Catalog
	policy  underwriting.Policy
	sink    underwriting.RecordSink
	version string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// underwriting API.
func NewHandler(logger *zap.Logger, catalog *underwriting.Catalog, policy underwriting.Policy,
	sink underwriting.RecordSink, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, catalog: catalog, policy: policy, sink: sink, version: trimmedVersion}

	mux := http.NewServeMux()

	// Loan catalog for the closed category choice list
	mux.HandleFunc("/api/catalog", h.handleCatalog)

	// One evaluation round per request
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)

	// Persist an approved configuration
	mux.HandleFunc("/api/save", h.handleSave)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type evaluateRequest struct {
	LoanType  string `json:"loanType"`
	Amount    string `json:"amount"`
	Income    string `json:"income"`
	TermYears string `json:"termYears"`
}

type categoryInfo struct {
	Name         string  `json:"name"`
	Rate         float64 `json:"rate"`
	MaxTermYears int     `json:"maxTermYears"`
}

type catalogResponse struct {
	Categories     []categoryInfo `json:"categories"`
	DebtRatioLimit float64        `json:"debtRatioLimit"`
}

// evaluateResponse carries one round's result. Monetary values are
// two-decimal strings so an unrepresentable payment serializes cleanly.
type evaluateResponse struct {
	Approved          bool   `json:"approved"`
	Reason            string `json:"reason"`
	LoanType          string `json:"loanType"`
	Principal         string `json:"principal"`
	InterestRate      string `json:"interestRate"`
	Term              string `json:"term"`
	MonthlyPayment    string `json:"monthlyPayment"`
	TotalInterest     string `json:"totalInterest"`
	MaxAllowedPayment string `json:"maxAllowedPayment"`
	CanExtendTerm     bool   `json:"canExtendTerm"`
	MaxTermYears      int    `json:"maxTermYears"`
}

type saveResponse struct {
	Saved bool `json:"saved"`
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	categories := h.catalog.Categories()
	infos := make([]categoryInfo, 0, len(categories))
	for _, category := range categories {
		infos = append(infos, categoryInfo{
			Name:         category.Name,
			Rate:         category.AnnualRate,
			MaxTermYears: category.MaxTermYears,
		})
	}

	h.writeJSON(w, http.StatusOK, catalogResponse{
		Categories:     infos,
		DebtRatioLimit: h.policy.DebtRatioLimit,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	round, session, err := h.evaluateOnce(r, "server.handleEvaluate")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleEvaluate")
		return
	}

	h.writeJSON(w, http.StatusOK, h.buildEvaluateResponse(round, session.Category()))
}

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	round, session, err := h.evaluateOnce(r, "server.handleSave")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSave")
		return
	}

	if !round.Affordable {
		h.respondError(w, http.StatusConflict,
			"loan is not approved: monthly payment exceeds the allowed ceiling", "server.handleSave")
		return
	}

	outcome, err := session.Approve()
	if err != nil {
		h.respondError(w, http.StatusConflict, err.Error(), "server.handleSave")
		return
	}

	record, err := underwriting.NewLoanRecord(outcome)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleSave")
		return
	}

	if err := h.sink.Append(record); err != nil {
		// The approved configuration is not discarded; the client may
		// retry the save with the same inputs.
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to save loan record: %v", err), "server.handleSave")
		return
	}

	h.logger.Info("loan record saved",
		zap.String("op", "server.handleSave"),
		zap.String("loanType", record.LoanType),
		zap.String("monthlyPayment", record.MonthlyPayment),
	)

	h.writeJSON(w, http.StatusOK, saveResponse{Saved: true})
}

// evaluateOnce parses one request, validates it with the same rules as the
// console front end, and runs a single underwriting round.
func (h *handler) evaluateOnce(r *http.Request, op string) (underwriting.Round, *underwriting.Session, error) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return underwriting.Round{}, nil, fmt.Errorf("failed to decode request: %v", err)
	}

	category, err := h.catalog.Lookup(strings.TrimSpace(req.LoanType))
	if err != nil {
		if errors.Is(err, underwriting.ErrInvalidCategory) {
			return underwriting.Round{}, nil, fmt.Errorf("please select a loan type from the list")
		}
		return underwriting.Round{}, nil, err
	}

	principal, err := validation.ParsePositiveAmount(req.Amount)
	if err != nil {
		return underwriting.Round{}, nil, fmt.Errorf("loan amount: %v", err)
	}
	income, err := validation.ParsePositiveAmount(req.Income)
	if err != nil {
		return underwriting.Round{}, nil, fmt.Errorf("monthly income: %v", err)
	}
	term, err := validation.ParseTermYears(req.TermYears, category.MaxTermYears)
	if err != nil {
		return underwriting.Round{}, nil, fmt.Errorf("loan term: %v", err)
	}

	session, err := underwriting.NewSession(h.logger, category, h.policy, underwriting.Input{
		Principal:     principal,
		MonthlyIncome: income,
		TermYears:     term,
	})
	if err != nil {
		return underwriting.Round{}, nil, err
	}

	round, err := session.Evaluate()
	if err != nil {
		return underwriting.Round{}, nil, err
	}

	h.logger.Debug("evaluation round completed",
		zap.String("op", op),
		zap.String("loanType", category.Name),
		zap.Bool("affordable", round.Affordable),
	)

	return round, session, nil
}

func (h *handler) buildEvaluateResponse(round underwriting.Round, category underwriting.Category) evaluateResponse {
	resp := evaluateResponse{
		Approved:          round.Affordable,
		LoanType:          category.Name,
		Principal:         format.Amount(round.Principal),
		InterestRate:      format.Percent(category.AnnualRate),
		Term:              format.TermYears(round.TermYears),
		MonthlyPayment:    format.Amount(round.Quote.MonthlyPayment),
		TotalInterest:     format.Amount(round.Quote.TotalInterest),
		MaxAllowedPayment: format.Amount(round.MaxAllowedPayment),
		CanExtendTerm:     round.CanExtendTerm,
		MaxTermYears:      category.MaxTermYears,
	}

	limitPercent := h.policy.DebtRatioLimit * 100
	if round.Affordable {
		resp.Reason = fmt.Sprintf("Your payment of $%s is within the %.0f%% income limit of $%s.",
			resp.MonthlyPayment, limitPercent, resp.MaxAllowedPayment)
	} else {
		reason := fmt.Sprintf("Your monthly payment of $%s exceeds %.0f%% of your income ($%s).",
			resp.MonthlyPayment, limitPercent, resp.MaxAllowedPayment)
		if round.CanExtendTerm {
			reason += fmt.Sprintf(" Try reducing the loan amount or extending the term (up to %d years).",
				category.MaxTermYears)
		} else {
			reason += fmt.Sprintf(" The term is already at the %d-year maximum; try reducing the loan amount.",
				category.MaxTermYears)
		}
		resp.Reason = reason
	}

	return resp
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("underwriting request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
