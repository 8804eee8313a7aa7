// handlers/request_handler.go
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

// RequestHandler owns the borrow-request lifecycle. The inventory side of
// each transition (asset status, quantity) arrives as a separate HTTP call
// from the client; the two writes are deliberately not coupled here.
type RequestHandler struct {
	Requests store.RequestStore
	Assets   store.AssetStore
	Users    store.UserStore
	Activity store.ActivityStore
	Hub      *websocket.Hub
	Logger   *zap.Logger
}

type createRequestRequest struct {
	AssetID        string `json:"assetId"`
	AdditionalNote string `json:"additionalNote,omitempty"`
}

func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok || email == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgNotAuthorized)
		return
	}

	var req createRequestRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	asset, err := h.Assets.Get(r.Context(), assetID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.Logger.Error("asset fetch failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	requestor, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("requestor lookup failed", zap.Error(err), zap.String("email", email))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	request := models.Request{
		RequestorEmail: email,
		RequestorName:  requestor.FullName,
		AssetID:        asset.ID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		PostedBy:       asset.PostedBy,
		CompanyName:    asset.CompanyName,
		RequestStatus:  models.RequestPending,
		AdditionalNote: req.AdditionalNote,
		ApprovalDate:   models.NoApproval,
	}

	id, err := h.Requests.Create(r.Context(), &request)
	if err != nil {
		h.Logger.Error("request insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.record(r, email, asset.CompanyName, "request_create", id, websocket.EventRequestCreated, map[string]any{
		"assetName": asset.ProductName,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"insertedId": id.Hex()})
}

// MyRequests lists the caller's requests with optional type/status filters
// and a case-insensitive name search.
func (h *RequestHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	q := r.URL.Query()
	requests, err := h.Requests.ListByRequestor(r.Context(), store.RequestFilter{
		RequestorEmail:  email,
		AssetType:       q.Get("assetType"),
		RequestStatus:   q.Get("requestStatus"),
		AssetNameSearch: q.Get("search"),
	})
	if err != nil {
		h.Logger.Error("request list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

// CancelRequest hard-deletes a request by id. There is no Pending check:
// cancel-only-while-Pending is a client convention, not a server rule.
func (h *RequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}

	if err := h.Requests.Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		h.Logger.Error("request delete failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "request cancelled"})
}

// ReturnRequest marks the request Returned. The quantity increment is the
// separate /asset/increase call.
func (h *RequestHandler) ReturnRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}

	if err := h.Requests.Return(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		h.Logger.Error("request return failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "request_return", id, websocket.EventRequestReturned, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset returned"})
}

// CompanyRequests lists every request against a company's assets, with an
// optional requestor-name substring search.
func (h *RequestHandler) CompanyRequests(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	requests, err := h.Requests.ListByCompany(r.Context(), company, r.URL.Query().Get("search"))
	if err != nil {
		h.Logger.Error("company request list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

// AllocatedAssets lists a company's Approved requests.
func (h *RequestHandler) AllocatedAssets(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	requests, err := h.Requests.ListAllocated(r.Context(), company)
	if err != nil {
		h.Logger.Error("allocated list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

// PendingRequests lists Pending requests whose asset was posted by the
// given admin.
func (h *RequestHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	requests, err := h.Requests.ListPendingForAdmin(r.Context(), email)
	if err != nil {
		h.Logger.Error("pending list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

// ApproveRequest sets status Approved with the approval timestamp. The
// quantity decrement is the separate /asset/decrease call the client
// issues alongside this one.
func (h *RequestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}

	if err := h.Requests.Approve(r.Context(), id, time.Now()); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		h.Logger.Error("request approve failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "request_approve", id, websocket.EventRequestApproved, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "request approved"})
}

func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}

	if err := h.Requests.Reject(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "request not found")
			return
		}
		h.Logger.Error("request reject failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	email, _ := middleware.EmailFromContext(r.Context())
	h.record(r, email, "", "request_reject", id, websocket.EventRequestRejected, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "request rejected"})
}

func (h *RequestHandler) record(r *http.Request, actor, company, action string, entityID primitive.ObjectID, event string, details map[string]any) {
	if company == "" {
		if request, err := h.Requests.Get(r.Context(), entityID); err == nil {
			company = request.CompanyName
		}
	}

	entry := models.Activity{
		CompanyName: company,
		ActorEmail:  actor,
		Action:      action,
		EntityType:  "request",
		EntityID:    entityID,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Activity.Insert(r.Context(), &entry); err != nil {
		h.Logger.Warn("activity insert failed", zap.Error(err), zap.String("action", action))
	}

	h.Hub.Broadcast(company, websocket.Update{
		Type:     event,
		EntityID: entityID.Hex(),
		Data:     details,
		Actor:    actor,
	})
}

func requestID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "request id required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request id format")
		return primitive.NilObjectID, false
	}
	return id, true
}
