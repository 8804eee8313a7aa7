// handlers/team_handler.go
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

// TeamHandler owns the membership relation between company owners and
// employees.
type TeamHandler struct {
	Users    store.UserStore
	Activity store.ActivityStore
	Hub      *websocket.Hub
	Logger   *zap.Logger
}

// Unaffiliated lists employees not yet on any team.
func (h *TeamHandler) Unaffiliated(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUnaffiliated(r.Context())
	if err != nil {
		h.Logger.Error("unaffiliated list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// AddToTeam claims one of the admin's member slots and copies the company
// identity onto the employee. The slot claim is a single conditional
// update, so two concurrent adds cannot both take the last seat.
func (h *TeamHandler) AddToTeam(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := middleware.EmailFromContext(r.Context())
	if !ok || adminEmail == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgNotAuthorized)
		return
	}

	employeeID, ok := userID(w, r)
	if !ok {
		return
	}

	admin, err := h.Users.GetByEmail(r.Context(), adminEmail)
	if err != nil {
		h.Logger.Error("admin lookup failed", zap.Error(err), zap.String("email", adminEmail))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if _, err := h.Users.GetByID(r.Context(), employeeID); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("employee lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.Users.ClaimSeat(r.Context(), adminEmail); err != nil {
		if err == store.ErrNoSeats {
			utils.RespondWithError(w, http.StatusConflict, "not enough member limit")
			return
		}
		h.Logger.Error("seat claim failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.Users.AssignTeam(r.Context(), employeeID, admin.CompanyName, admin.CompanyLogo); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("team assign failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.record(r, adminEmail, admin.CompanyName, "team_add", employeeID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "employee added to team"})
}

// RemoveFromTeam resets the employee to unaffiliated. The admin's seat
// counter is not restored; seats are consumed for good once claimed.
func (h *TeamHandler) RemoveFromTeam(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := userID(w, r)
	if !ok {
		return
	}

	employee, err := h.Users.GetByID(r.Context(), employeeID)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("employee lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.Users.ClearTeam(r.Context(), employeeID); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Logger.Error("team clear failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	adminEmail, _ := middleware.EmailFromContext(r.Context())
	h.record(r, adminEmail, employee.CompanyName, "team_remove", employeeID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "employee removed from team"})
}

// Team is the admin view of a company's members.
func (h *TeamHandler) Team(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	users, err := h.Users.ListByCompany(r.Context(), company)
	if err != nil {
		h.Logger.Error("team list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// MyTeam is the member self-view: the caller's own company roster.
func (h *TeamHandler) MyTeam(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok || email == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgNotAuthorized)
		return
	}

	caller, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("caller lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if !caller.OnTeam() {
		utils.RespondWithJSON(w, http.StatusOK, []models.User{})
		return
	}

	users, err := h.Users.ListEmployeesByCompany(r.Context(), caller.CompanyName)
	if err != nil {
		h.Logger.Error("my team list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

func (h *TeamHandler) record(r *http.Request, actor, company, action string, employeeID primitive.ObjectID) {
	entry := models.Activity{
		CompanyName: company,
		ActorEmail:  actor,
		Action:      action,
		EntityType:  "user",
		EntityID:    employeeID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Activity.Insert(r.Context(), &entry); err != nil {
		h.Logger.Warn("activity insert failed", zap.Error(err), zap.String("action", action))
	}

	h.Hub.Broadcast(company, websocket.Update{
		Type:     websocket.EventTeamChanged,
		EntityID: employeeID.Hex(),
		Actor:    actor,
	})
}

func userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id format")
		return primitive.NilObjectID, false
	}
	return id, true
}
