package handler

import (
	"net/http"
	"strconv"

	"github.com/wrenfall/StarstreamBot_Go/internal/ledger"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
)

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// GrantRequest mints coins into an account. The caller is trusted to
// have authorized the acting identity; the API key gate is the only
// check applied here.
type GrantRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// ConfiscateRequest removes up to Amount coins from an account.
type ConfiscateRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// ConfiscateResponse reports the amount actually seized, which is
// capped to the account balance.
type ConfiscateResponse struct {
	UserID  string `json:"user_id"`
	Seized  int64  `json:"seized"`
	Balance int64  `json:"balance"`
}

// TransferRequest moves coins between two accounts.
type TransferRequest struct {
	SenderID    string `json:"sender_id" validate:"required"`
	RecipientID string `json:"recipient_id" validate:"required,nefield=SenderID"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
}

// TransferResponse reports whether the transfer happened. ok=false
// means insufficient funds and no balance changed.
type TransferResponse struct {
	OK            bool  `json:"ok"`
	SenderBalance int64 `json:"sender_balance"`
}

// HandleGetBalance returns an account's balance, bootstrapping the
// account on first reference.
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := getQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get balance", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Balance: balance})
	}
}

// HandleGrant mints coins into an account.
func HandleGrant(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GrantRequest
		if err := decodeAndValidate(r, w, &req, "grant"); err != nil {
			return
		}

		balance, err := svc.Grant(r.Context(), req.UserID, req.Amount)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to grant coins", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: req.UserID, Balance: balance})
	}
}

// HandleConfiscate removes up to the requested amount from an account,
// never driving the balance negative.
func HandleConfiscate(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfiscateRequest
		if err := decodeAndValidate(r, w, &req, "confiscate"); err != nil {
			return
		}

		seized, balance, err := svc.Confiscate(r.Context(), req.UserID, req.Amount)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to confiscate coins", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ConfiscateResponse{UserID: req.UserID, Seized: seized, Balance: balance})
	}
}

// HandleTransfer moves coins between accounts. Insufficient funds is a
// 402 with ok=false, not an error.
func HandleTransfer(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := decodeAndValidate(r, w, &req, "transfer"); err != nil {
			return
		}

		result, err := svc.Transfer(r.Context(), req.SenderID, req.RecipientID, req.Amount)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to transfer coins", "error", err)
			respondServiceError(w, err)
			return
		}

		status := http.StatusOK
		if !result.OK {
			status = http.StatusPaymentRequired
		}
		respondJSON(w, status, TransferResponse{OK: result.OK, SenderBalance: result.SenderBalance})
	}
}

// HandleLeaderboard returns the top accounts by balance.
func HandleLeaderboard(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			limit = parsed
		}

		accounts, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get leaderboard", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"entries": accounts})
	}
}
