// handlers/custom_request_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/middleware"
	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// CustomRequestHandler owns the two-state custom-request machine:
// Pending -> Approved|Rejected, plus an open-ended field patch.
type CustomRequestHandler struct {
	CustomRequests store.CustomRequestStore
	Users          store.UserStore
	Logger         *zap.Logger
}

type createCustomRequest struct {
	AssetName      string  `json:"assetName"`
	AssetType      string  `json:"assetType"`
	Price          float64 `json:"price"`
	AssetImage     string  `json:"assetImage,omitempty"`
	WhyNeeded      string  `json:"whyNeeded,omitempty"`
	AdditionalInfo string  `json:"additionalInfo,omitempty"`
}

func (h *CustomRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok || email == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgNotAuthorized)
		return
	}

	var req createCustomRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.AssetName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required field: assetName")
		return
	}

	requestor, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("requestor lookup failed", zap.Error(err), zap.String("email", email))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	request := models.CustomRequest{
		RequestorEmail: email,
		RequestorName:  requestor.FullName,
		RequestorTeam:  requestor.CompanyName,
		AssetName:      req.AssetName,
		AssetType:      req.AssetType,
		Price:          req.Price,
		AssetImage:     req.AssetImage,
		WhyNeeded:      req.WhyNeeded,
		AdditionalInfo: req.AdditionalInfo,
		Status:         models.RequestPending,
	}

	id, err := h.CustomRequests.Create(r.Context(), &request)
	if err != nil {
		h.Logger.Error("custom request insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"insertedId": id.Hex()})
}

func (h *CustomRequestHandler) Mine(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	requests, err := h.CustomRequests.ListByRequestor(r.Context(), email)
	if err != nil {
		h.Logger.Error("custom request list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *CustomRequestHandler) ForTeam(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	requests, err := h.CustomRequests.ListByTeam(r.Context(), company)
	if err != nil {
		h.Logger.Error("team custom request list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

type customStatusRequest struct {
	Status string `json:"status"`
}

func (h *CustomRequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := customRequestID(w, r)
	if !ok {
		return
	}

	var req customStatusRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Status != models.RequestApproved && req.Status != models.RequestRejected {
		utils.RespondWithError(w, http.StatusBadRequest, "status must be Approved or Rejected")
		return
	}

	if err := h.CustomRequests.SetStatus(r.Context(), id, req.Status); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "custom request not found")
			return
		}
		h.Logger.Error("custom request status failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// Patch applies an arbitrary field update from the requestor, allowed
// while any status. The status and identity fields are stripped so a
// patch cannot decide its own request or reassign it.
func (h *CustomRequestHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := customRequestID(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := utils.ParseJSON(r, &fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	delete(fields, "status")
	delete(fields, "requestorEmail")
	delete(fields, "requestorTeam")
	delete(fields, "_id")

	if err := h.CustomRequests.Patch(r.Context(), id, fields); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "custom request not found")
			return
		}
		h.Logger.Error("custom request patch failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "custom request updated"})
}

func customRequestID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request id format")
		return primitive.NilObjectID, false
	}
	return id, true
}
