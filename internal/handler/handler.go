package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/middleware"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the public routes on r and everything else behind auth
func (h *Handler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth)
	api.HandleFunc("/finances", h.GetFinances).Methods("GET")
	api.HandleFunc("/incomes", h.CreateIncome).Methods("POST")
	api.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	api.HandleFunc("/investments", h.CreateInvestment).Methods("POST")
	api.HandleFunc("/investments/{id}/finalize", h.FinalizeInvestment).Methods("POST")
	api.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	api.HandleFunc("/projection", h.GetProjection).Methods("GET")
	api.HandleFunc("/balance", h.GetBalance).Methods("GET")
	api.HandleFunc("/key-rate", h.GetKeyRate).Methods("GET")
}

// Health reports the service is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetFinances returns every record of the current user
func (h *Handler) GetFinances(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	f, err := h.svc.Finances(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// CreateIncome handles income submission
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var params models.CreateIncomeParams
	if !decode(w, r, &params) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	income, err := h.svc.AddIncome(r.Context(), userID, params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, income)
}

// CreateExpense handles expense submission
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var params models.CreateExpenseParams
	if !decode(w, r, &params) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	expense, err := h.svc.AddExpense(r.Context(), userID, params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// CreateInvestment handles investment submission
func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	var params models.CreateInvestmentParams
	if !decode(w, r, &params) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	inv, err := h.svc.AddInvestment(r.Context(), userID, params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// FinalizeInvestment realizes an investment as income
func (h *Handler) FinalizeInvestment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	result, err := h.svc.FinalizeInvestment(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteTransaction deletes a record, or the record a projected transaction came from
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	deleted, err := h.svc.DeleteTransaction(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": deleted})
}

// GetProjection returns the deduplicated future transactions; ?view= names the client list
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	list, err := h.svc.FutureTransactions(r.Context(), userID, r.URL.Query().Get("view"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetBalance returns the balance summary of the current user
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	summary, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetKeyRate returns the reference key rate
func (h *Handler) GetKeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.KeyRate(r.Context())
	if err != nil {
		h.log.Errorf("Failed to get key rate: %v", err)
		http.Error(w, "Failed to get key rate", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrInvestmentFinalized):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrMissingUser):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
