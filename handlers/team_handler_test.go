package handlers

import (
	"encoding/json"
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

func newTeamHandler(users *mockUserStore, activity *mockActivityStore) *TeamHandler {
	return &TeamHandler{
		Users:    users,
		Activity: activity,
		Hub:      websocket.NewHub(zap.NewNop()),
		Logger:   zap.NewNop(),
	}
}

func TestAddToTeamCopiesCompanyIdentity(t *testing.T) {
	employeeID := primitive.NewObjectID()

	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "owner@corp.com").Return(&models.User{
		Email:       "owner@corp.com",
		Role:        models.RoleAdmin,
		CompanyName: "Corp",
		CompanyLogo: "https://corp.example/logo.png",
	}, nil)
	users.On("GetByID", mock.Anything, employeeID).Return(&models.User{
		ID:          employeeID,
		CompanyName: models.Unaffiliated,
	}, nil)
	users.On("ClaimSeat", mock.Anything, "owner@corp.com").Return(nil)
	users.On("AssignTeam", mock.Anything, employeeID, "Corp", "https://corp.example/logo.png").Return(nil)

	activity := new(mockActivityStore)
	activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	h := newTeamHandler(users, activity)
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/addToTeam/"+employeeID.Hex(), nil), "owner@corp.com")
	req = mux.SetURLVars(req, map[string]string{"id": employeeID.Hex()})
	h.AddToTeam(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	users.AssertExpectations(t)
}

func TestAddToTeamNoSeatsLeftConflicts(t *testing.T) {
	employeeID := primitive.NewObjectID()

	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "owner@corp.com").Return(&models.User{
		Email:       "owner@corp.com",
		CompanyName: "Corp",
	}, nil)
	users.On("GetByID", mock.Anything, employeeID).Return(&models.User{ID: employeeID}, nil)
	users.On("ClaimSeat", mock.Anything, "owner@corp.com").Return(store.ErrNoSeats)

	h := newTeamHandler(users, new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/addToTeam/"+employeeID.Hex(), nil), "owner@corp.com")
	req = mux.SetURLVars(req, map[string]string{"id": employeeID.Hex()})
	h.AddToTeam(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "not enough member limit", body["error"])

	users.AssertNotCalled(t, "AssignTeam", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToTeamUnknownEmployeeLeavesSeatUnclaimed(t *testing.T) {
	employeeID := primitive.NewObjectID()

	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "owner@corp.com").Return(&models.User{
		Email:       "owner@corp.com",
		CompanyName: "Corp",
	}, nil)
	users.On("GetByID", mock.Anything, employeeID).Return(nil, store.ErrNotFound)

	h := newTeamHandler(users, new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/addToTeam/"+employeeID.Hex(), nil), "owner@corp.com")
	req = mux.SetURLVars(req, map[string]string{"id": employeeID.Hex()})
	h.AddToTeam(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	users.AssertNotCalled(t, "ClaimSeat", mock.Anything, mock.Anything)
}

func TestRemoveFromTeamDoesNotRestoreSeat(t *testing.T) {
	employeeID := primitive.NewObjectID()

	users := new(mockUserStore)
	users.On("GetByID", mock.Anything, employeeID).Return(&models.User{
		ID:          employeeID,
		CompanyName: "Corp",
	}, nil)
	users.On("ClearTeam", mock.Anything, employeeID).Return(nil)

	activity := new(mockActivityStore)
	activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	h := newTeamHandler(users, activity)
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPatch, "/removeFromTeam/"+employeeID.Hex(), nil), "owner@corp.com")
	req = mux.SetURLVars(req, map[string]string{"id": employeeID.Hex()})
	h.RemoveFromTeam(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	users.AssertExpectations(t)
	users.AssertNotCalled(t, "UpgradePackage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMyTeamUnaffiliatedCallerGetsEmptyRoster(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "worker@mail.com").Return(&models.User{
		Email:       "worker@mail.com",
		CompanyName: models.Unaffiliated,
	}, nil)

	h := newTeamHandler(users, new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodGet, "/myTeam", nil), "worker@mail.com")
	h.MyTeam(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
	users.AssertNotCalled(t, "ListEmployeesByCompany", mock.Anything, mock.Anything)
}

func TestMyTeamListsCompanyEmployees(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "worker@mail.com").Return(&models.User{
		Email:       "worker@mail.com",
		CompanyName: "Corp",
	}, nil)
	users.On("ListEmployeesByCompany", mock.Anything, "Corp").Return([]models.User{
		{Email: "worker@mail.com", CompanyName: "Corp"},
		{Email: "other@mail.com", CompanyName: "Corp"},
	}, nil)

	h := newTeamHandler(users, new(mockActivityStore))
	rr := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodGet, "/myTeam", nil), "worker@mail.com")
	h.MyTeam(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	users.AssertExpectations(t)
}
