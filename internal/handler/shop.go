package handler

import (
	"net/http"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/shop"
)

// AddItemRequest creates a shop item within a guild.
type AddItemRequest struct {
	GuildID      string  `json:"guild_id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Cost         int64   `json:"cost" validate:"required,gt=0"`
	RewardRoleID string  `json:"reward_role_id" validate:"required"`
	ImageURL     *string `json:"image_url,omitempty"`
	Unique       bool    `json:"unique"`
}

// RemoveItemRequest deletes a shop item by guild-scoped name.
type RemoveItemRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

// PurchaseRequest buys an item for a user. The reward itself is granted
// by the caller after a successful response; POST /shop/refund is the
// compensation path if that grant fails.
type PurchaseRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

// RefundRequest reverses a purchase whose reward the caller failed to
// deliver. It credits the item's cost back and releases the claim on
// unique items.
type RefundRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

// HandleListItems returns a guild's items ordered by ascending cost.
func HandleListItems(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := getQueryParam(r, w, "guild_id")
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), guildID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list shop items", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
	}
}

// HandleGetItem returns a single item, or 404 when absent.
func HandleGetItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := getQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		name, ok := getQueryParam(r, w, "name")
		if !ok {
			return
		}

		item, err := svc.GetItem(r.Context(), guildID, name)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get shop item", "error", err)
			respondServiceError(w, err)
			return
		}
		if item == nil {
			respondError(w, http.StatusNotFound, domain.ErrMsgItemNotFound)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleAddItem creates a shop item. Duplicate names within a guild are
// a 409.
func HandleAddItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddItemRequest
		if err := decodeAndValidate(r, w, &req, "add shop item"); err != nil {
			return
		}

		item, err := svc.AddItem(r.Context(), req.GuildID, req.Name, req.Cost, req.RewardRoleID, req.ImageURL, req.Unique)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to add shop item", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, item)
	}
}

// HandleRemoveItem deletes a shop item. 404 when no such item.
func HandleRemoveItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveItemRequest
		if err := decodeAndValidate(r, w, &req, "remove shop item"); err != nil {
			return
		}

		removed, err := svc.RemoveItem(r.Context(), req.GuildID, req.Name)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to remove shop item", "error", err)
			respondServiceError(w, err)
			return
		}
		if !removed {
			respondError(w, http.StatusNotFound, domain.ErrMsgItemNotFound)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

// HandlePurchase runs the purchase for an API caller. No granter is
// passed, so the debit (and claim, for unique items) commits here and
// the caller delivers the reward afterwards, calling HandleRefund if
// that delivery fails.
func HandlePurchase(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := decodeAndValidate(r, w, &req, "purchase"); err != nil {
			return
		}

		result, err := svc.Purchase(r.Context(), req.GuildID, req.Name, req.UserID, nil)
		if err != nil {
			logger.FromContext(r.Context()).Error("Purchase failed", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, purchaseStatus(result.Outcome), result)
	}
}

func purchaseStatus(outcome domain.PurchaseOutcome) int {
	switch outcome {
	case domain.OutcomeItemNotFound:
		return http.StatusNotFound
	case domain.OutcomeAlreadyClaimed:
		return http.StatusConflict
	case domain.OutcomeInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusOK
	}
}

// HandleRefund reverses a committed purchase after the caller's reward
// delivery failed.
func HandleRefund(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefundRequest
		if err := decodeAndValidate(r, w, &req, "refund"); err != nil {
			return
		}

		result, err := svc.Refund(r.Context(), req.GuildID, req.Name, req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Refund failed", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
