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
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/websocket"
)

func newRequestHandler(requests *mockRequestStore, assets *mockAssetStore, users *mockUserStore, activity *mockActivityStore) *RequestHandler {
	return &RequestHandler{
		Requests: requests,
		Assets:   assets,
		Users:    users,
		Activity: activity,
		Hub:      websocket.NewHub(zap.NewNop()),
		Logger:   zap.NewNop(),
	}
}

func TestCreateRequestDenormalizesAssetFields(t *testing.T) {
	assetID := primitive.NewObjectID()

	assets := new(mockAssetStore)
	assets.On("Get", mock.Anything, assetID).Return(&models.Asset{
		ID:          assetID,
		ProductName: "Laptop",
		ProductType: models.TypeReturnable,
		PostedBy:    "owner@corp.com",
		CompanyName: "Corp",
	}, nil)

	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "worker@mail.com").Return(&models.User{
		Email:    "worker@mail.com",
		FullName: "Worker",
	}, nil)

	requests := new(mockRequestStore)
	requests.On("Create", mock.Anything, mock.MatchedBy(func(req *models.Request) bool {
		return req.RequestorEmail == "worker@mail.com" &&
			req.RequestorName == "Worker" &&
			req.AssetID == assetID &&
			req.AssetName == "Laptop" &&
			req.AssetType == models.TypeReturnable &&
			req.PostedBy == "owner@corp.com" &&
			req.CompanyName == "Corp" &&
			req.RequestStatus == models.RequestPending &&
			req.ApprovalDate == models.NoApproval
	})).Return(primitive.NewObjectID(), nil)

	activity := new(mockActivityStore)
	activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	h := newRequestHandler(requests, assets, users, activity)
	rr := httptest.NewRecorder()
	req := authed(postJSON(t, "/requestAsset", map[string]string{
		"assetId":        assetID.Hex(),
		"additionalNote": "for the field trip",
	}), "worker@mail.com")
	h.CreateRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	requests.AssertExpectations(t)
}

func TestCreateRequestUnknownAssetIs404(t *testing.T) {
	assetID := primitive.NewObjectID()

	assets := new(mockAssetStore)
	assets.On("Get", mock.Anything, assetID).Return(nil, store.ErrNotFound)

	h := newRequestHandler(new(mockRequestStore), assets, new(mockUserStore), new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := authed(postJSON(t, "/requestAsset", map[string]string{"assetId": assetID.Hex()}), "worker@mail.com")
	h.CreateRequest(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCancelRequestDeletesRegardlessOfStatus(t *testing.T) {
	id := primitive.NewObjectID()

	requests := new(mockRequestStore)
	requests.On("Delete", mock.Anything, id).Return(nil)

	h := newRequestHandler(requests, new(mockAssetStore), new(mockUserStore), new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cancelRequest/"+id.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
	h.CancelRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	// No Get call, so no status inspection happens before the delete.
	requests.AssertExpectations(t)
}

func TestApproveRequestStampsApprovalTime(t *testing.T) {
	id := primitive.NewObjectID()

	requests := new(mockRequestStore)
	requests.On("Approve", mock.Anything, id, mock.AnythingOfType("time.Time")).Return(nil)
	requests.On("Get", mock.Anything, id).Return(&models.Request{
		ID:          id,
		CompanyName: "Corp",
	}, nil)

	activity := new(mockActivityStore)
	activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	h := newRequestHandler(requests, new(mockAssetStore), new(mockUserStore), activity)
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/approveRequest/"+id.Hex(), nil), "owner@corp.com")
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
	h.ApproveRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	requests.AssertExpectations(t)
}

func TestReturnRequestMarksReturnedOnly(t *testing.T) {
	id := primitive.NewObjectID()

	requests := new(mockRequestStore)
	requests.On("Return", mock.Anything, id).Return(nil)
	requests.On("Get", mock.Anything, id).Return(&models.Request{
		ID:          id,
		CompanyName: "Corp",
	}, nil)

	activity := new(mockActivityStore)
	activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	assets := new(mockAssetStore)

	h := newRequestHandler(requests, assets, new(mockUserStore), activity)
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/returnAsset/"+id.Hex(), nil), "worker@mail.com")
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})
	h.ReturnRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	// The quantity increment travels on a separate /asset/increase call.
	assets.AssertNotCalled(t, "IncrementOnReturn", mock.Anything, mock.Anything)
}

func TestMyRequestsRequiresEmail(t *testing.T) {
	h := newRequestHandler(new(mockRequestStore), new(mockAssetStore), new(mockUserStore), new(mockActivityStore))
	rr := httptest.NewRecorder()
	h.MyRequests(rr, httptest.NewRequest(http.MethodGet, "/myRequests", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMyRequestsForwardsFilters(t *testing.T) {
	requests := new(mockRequestStore)
	requests.On("ListByRequestor", mock.Anything, store.RequestFilter{
		RequestorEmail:  "worker@mail.com",
		AssetType:       models.TypeReturnable,
		RequestStatus:   models.RequestPending,
		AssetNameSearch: "lap",
	}).Return([]models.Request{}, nil)

	h := newRequestHandler(requests, new(mockAssetStore), new(mockUserStore), new(mockActivityStore))
	rr := httptest.NewRecorder()
	h.MyRequests(rr, httptest.NewRequest(http.MethodGet,
		"/myRequests?email=worker@mail.com&assetType=Returnable&requestStatus=Pending&search=lap", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	requests.AssertExpectations(t)
}
