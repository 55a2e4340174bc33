package ledger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/templeflow/templeflow-ledger/internal/platform/httpx"
)

// Handler wires ledger HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers HTTP routes for the ledger module.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts", h.listAccounts)
	r.Post("/accounts", h.addAccount)
	r.Get("/accounts/{id}", h.getAccount)
	r.Get("/transactions", h.listTransactions)
	r.Post("/transactions", h.postTransaction)
	r.Post("/transactions/{id}/void", h.voidTransaction)
	r.Get("/funds", h.listFunds)
	r.Get("/bank-accounts", h.listBankAccounts)
	r.Get("/reports/trial-balance", h.trialBalance)
	r.Get("/reports/trial-balance.csv", h.trialBalanceCSV)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.Accounts(r.Context())
	if err != nil {
		h.respondError(w, "list accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	var req addAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.AddAccount(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, "add account", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	account, ok, err := h.service.AccountByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "get account", err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "account "+id+" does not exist")
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.Transactions(r.Context())
	if err != nil {
		h.respondError(w, "list transactions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, transactions)
}

func (h *Handler) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	txn, err := h.service.PostTransaction(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, "post transaction", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, txn)
}

func (h *Handler) voidTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txn, err := h.service.VoidTransaction(r.Context(), id)
	if err != nil {
		h.respondError(w, "void transaction", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txn)
}

func (h *Handler) listFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.service.Funds(r.Context())
	if err != nil {
		h.respondError(w, "list funds", err)
		return
	}
	httpx.JSON(w, http.StatusOK, funds)
}

func (h *Handler) listBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.BankAccounts(r.Context())
	if err != nil {
		h.respondError(w, "list bank accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.TrialBalance(r.Context())
	if err != nil {
		h.respondError(w, "trial balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

// respondError maps domain errors onto RFC7807 responses.
func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUnbalanced), errors.Is(err, ErrNoEntries), errors.Is(err, ErrUnknownAccount), errors.Is(err, ErrParentNotFound):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, ErrDuplicateAccount):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrTransactionNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusConflict, "Invalid Status", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
