package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
)

func newCustomRequestHandler(customs *mockCustomRequestStore, users *mockUserStore) *CustomRequestHandler {
	return &CustomRequestHandler{CustomRequests: customs, Users: users, Logger: zap.NewNop()}
}

func TestCreateCustomRequestCopiesRequestorIdentity(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "worker@mail.com").Return(&models.User{
		Email:       "worker@mail.com",
		FullName:    "Worker",
		CompanyName: "Corp",
	}, nil)

	customs := new(mockCustomRequestStore)
	customs.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CustomRequest) bool {
		return req.RequestorEmail == "worker@mail.com" &&
			req.RequestorName == "Worker" &&
			req.RequestorTeam == "Corp" &&
			req.AssetName == "Standing Desk" &&
			req.Status == models.RequestPending
	})).Return(primitive.NewObjectID(), nil)

	h := newCustomRequestHandler(customs, users)
	rr := httptest.NewRecorder()
	req := authed(postJSON(t, "/customRequest", map[string]any{
		"assetName": "Standing Desk",
		"assetType": models.TypeNonReturnable,
		"price":     300.0,
	}), "worker@mail.com")
	h.Create(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	customs.AssertExpectations(t)
}

func TestSetCustomStatusRejectsPendingTransition(t *testing.T) {
	customs := new(mockCustomRequestStore)
	h := newCustomRequestHandler(customs, new(mockUserStore))
	id := primitive.NewObjectID().Hex()

	rr := httptest.NewRecorder()
	req := postJSON(t, "/customRequestStatus/"+id, map[string]string{"status": models.RequestPending})
	req = mux.SetURLVars(req, map[string]string{"id": id})
	h.SetStatus(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	customs.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchStripsStatusAndIdentityFields(t *testing.T) {
	id := primitive.NewObjectID()

	customs := new(mockCustomRequestStore)
	customs.On("Patch", mock.Anything, id, map[string]any{
		"assetName": "Curved Monitor",
		"price":     450.0,
	}).Return(nil)

	h := newCustomRequestHandler(customs, new(mockUserStore))
	rr := httptest.NewRecorder()
	req := postJSON(t, "/customRequest/"+id.Hex(), map[string]any{
		"assetName":      "Curved Monitor",
		"price":          450.0,
		"status":         models.RequestApproved,
		"requestorEmail": "intruder@mail.com",
		"requestorTeam":  "OtherCorp",
		"_id":            primitive.NewObjectID().Hex(),
	})
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
	h.Patch(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	customs.AssertExpectations(t)
}
