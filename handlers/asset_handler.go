// handlers/asset_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/middleware"
	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
	"github.com/SajeedAninda/Sovereign-Assets-Server/websocket"
)

// AssetHandler owns the inventory routes.
type AssetHandler struct {
	Assets   store.AssetStore
	Users    store.UserStore
	Activity store.ActivityStore
	Hub      *websocket.Hub
	Logger   *zap.Logger
}

type createAssetRequest struct {
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"`
	ProductQuantity int    `json:"productQuantity"`
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok || email == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgNotAuthorized)
		return
	}

	var req createAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.ProductName == "" || req.ProductType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: productName and productType")
		return
	}
	if req.ProductQuantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "productQuantity cannot be negative")
		return
	}

	owner, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("asset owner lookup failed", zap.Error(err), zap.String("email", email))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	asset := models.Asset{
		ProductName:     req.ProductName,
		ProductType:     req.ProductType,
		ProductQuantity: req.ProductQuantity,
		Status:          models.AssetNotRequested,
		PostedBy:        email,
		CompanyName:     owner.CompanyName,
	}

	id, err := h.Assets.Create(r.Context(), &asset)
	if err != nil {
		h.Logger.Error("asset insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.record(r, email, owner.CompanyName, "asset_create", id, map[string]any{
		"productName": req.ProductName,
		"quantity":    req.ProductQuantity,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"insertedId": id.Hex()})
}

// ListAssets builds a conjunctive filter from the query string. The
// `status` parameter is the availability predicate (available/stockOut)
// derived from quantity, not the stored workflow status. An empty result
// is a 404 for wire compatibility.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.AssetFilter{
		PostedBy:     q.Get("email"),
		CompanyName:  q.Get("company"),
		ProductType:  q.Get("productType"),
		Availability: q.Get("status"),
		NameSearch:   q.Get("search"),
		SortQuantity: q.Get("sort"),
	}

	assets, err := h.Assets.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("asset list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if len(assets) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No assets found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	asset, err := h.Assets.Get(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset fetch failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, asset)
}

type updateAssetRequest struct {
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"`
	ProductQuantity int    `json:"productQuantity"`
}

// UpdateAsset has upsert semantics: an unknown id creates the document.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	var req updateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := h.Assets.Update(r.Context(), id, req.ProductName, req.ProductType, req.ProductQuantity); err != nil {
		h.Logger.Error("asset update failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "asset_update", id, map[string]any{
		"productName": req.ProductName,
		"quantity":    req.ProductQuantity,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset updated successfully"})
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	if err := h.Assets.Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset delete failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "asset_delete", id, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset deleted successfully"})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeAssetStatus moves the asset workflow status. It is the second
// half of the request-creation compound operation and arrives as its own
// HTTP call from the client.
func (h *AssetHandler) ChangeAssetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	switch req.Status {
	case models.AssetNotRequested, models.AssetPending, models.AssetApproved:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.Assets.SetStatus(r.Context(), id, req.Status); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset status change failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// DecreaseQuantity is the inventory half of an approval: quantity -1 and
// workflow status Approved in one store update. The request status change
// is a separate call.
func (h *AssetHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	if err := h.Assets.DecrementOnApproval(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset decrement failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "asset_quantity_decrease", id, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "quantity decreased"})
}

// IncreaseQuantity is the inventory half of a return.
func (h *AssetHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	if err := h.Assets.IncrementOnReturn(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset increment failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "asset_quantity_increase", id, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "quantity increased"})
}

func (h *AssetHandler) CountAssets(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	count, err := h.Assets.CountByOwner(r.Context(), email)
	if err != nil {
		h.Logger.Error("asset count failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{"count": count})
}

const lowStockThreshold = 10

func (h *AssetHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	assets, err := h.Assets.LowStock(r.Context(), email, lowStockThreshold)
	if err != nil {
		h.Logger.Error("low stock query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// GetAssetData returns the raw asset rows a client renders into its
// printable report. Unguarded route; see the authorization matrix notes.
func (h *AssetHandler) GetAssetData(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	assets, err := h.Assets.List(r.Context(), store.AssetFilter{PostedBy: email})
	if err != nil {
		h.Logger.Error("asset data query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// record writes the activity trail entry and mirrors it on the feed.
// Trail failures are logged, never surfaced to the caller.
func (h *AssetHandler) record(r *http.Request, actor, company, action string, entityID primitive.ObjectID, details map[string]any) {
	if company == "" && actor != "" {
		if owner, err := h.Users.GetByEmail(r.Context(), actor); err == nil {
			company = owner.CompanyName
		}
	}

	entry := models.Activity{
		CompanyName: company,
		ActorEmail:  actor,
		Action:      action,
		EntityType:  "asset",
		EntityID:    entityID,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Activity.Insert(r.Context(), &entry); err != nil {
		h.Logger.Warn("activity insert failed", zap.Error(err), zap.String("action", action))
	}

	h.Hub.Broadcast(company, websocket.Update{
		Type:     websocket.EventAssetChanged,
		EntityID: entityID.Hex(),
		Data:     details,
		Actor:    actor,
	})
}

func assetID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "asset id required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return primitive.NilObjectID, false
	}
	return id, true
}
