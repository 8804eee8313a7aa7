// handlers/auth_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/config"
	"github.com/SajeedAninda/Sovereign-Assets-Server/middleware"
	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// AuthHandler owns registration, session issue/clear, and the user and
// payment lookups.
type AuthHandler struct {
	Users  store.UserStore
	Logger *zap.Logger
}

type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// IssueToken mints the long-lived session cookie. The social-auth frontend
// is trusted for identity; when the account carries a password hash the
// submitted password must match it.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err == nil && user.PasswordHash != "" {
		if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
	}

	token, err := utils.GenerateJWT(req.Email)
	if err != nil {
		h.Logger.Error("JWT generation failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.JWTExpiration / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout clears the cookie. The token value itself stays valid until its
// expiry; there is no server-side session state to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type adminRegisterRequest struct {
	FullName           string  `json:"fullName"`
	Email              string  `json:"email"`
	Password           string  `json:"password,omitempty"`
	CompanyName        string  `json:"companyName"`
	CompanyLogo        string  `json:"companyLogo,omitempty"`
	DateOfBirth        string  `json:"dateOfBirth,omitempty"`
	AvailableEmployees int     `json:"availableEmployees"`
	PayableAmount      float64 `json:"payableAmount"`
}

// RegisterAdmin creates a company-owner account. The admin role itself is
// only assigned once the subscription payment completes.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRegisterRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" || req.CompanyName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: email and companyName")
		return
	}

	user := models.User{
		FullName:           req.FullName,
		Email:              req.Email,
		CompanyName:        req.CompanyName,
		CompanyLogo:        req.CompanyLogo,
		DateOfBirth:        req.DateOfBirth,
		AvailableEmployees: req.AvailableEmployees,
		PayableAmount:      req.PayableAmount,
		PaymentStatus:      "pending",
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			h.Logger.Error("password hash failed", zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		user.PasswordHash = hash
	}

	id, err := h.Users.Create(r.Context(), &user)
	if err != nil {
		h.Logger.Error("admin insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"insertedId": id.Hex()})
}

type employeeRegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// RegisterEmployee creates an unaffiliated employee account.
func (h *AuthHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	h.registerEmployee(w, r, false)
}

// RegisterSocialEmployee is the social-login path: the same shape, but a
// second registration with the same email is rejected.
func (h *AuthHandler) RegisterSocialEmployee(w http.ResponseWriter, r *http.Request) {
	h.registerEmployee(w, r, true)
}

func (h *AuthHandler) registerEmployee(w http.ResponseWriter, r *http.Request, unique bool) {
	var req employeeRegisterRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required field: email")
		return
	}

	user := models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Role:        models.RoleEmployee,
		CompanyName: models.Unaffiliated,
		DateOfBirth: req.DateOfBirth,
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			h.Logger.Error("password hash failed", zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		user.PasswordHash = hash
	}

	var (
		id  primitive.ObjectID
		err error
	)
	if unique {
		id, err = h.Users.CreateUnique(r.Context(), &user)
	} else {
		id, err = h.Users.Create(r.Context(), &user)
	}
	if err != nil {
		if err == store.ErrDuplicateEmail {
			utils.RespondWithError(w, http.StatusConflict, "Email already exists")
			return
		}
		h.Logger.Error("employee insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"insertedId": id.Hex()})
}

// GetUserData returns the full user document for an email. Legacy route,
// intentionally unguarded.
func (h *AuthHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("user lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetPaymentData returns the payable amount and status for an email.
func (h *AuthHandler) GetPaymentData(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("payment data lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"payableAmount": user.PayableAmount,
		"paymentStatus": user.PaymentStatus,
	})
}

type confirmPaymentRequest struct {
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	PayableAmount float64 `json:"payableAmount"`
	PaymentStatus string  `json:"paymentStatus"`
}

// ConfirmPayment records a completed subscription charge: role assignment
// plus the payable bookkeeping, in one user update.
func (h *AuthHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = "paid"
	}

	if err := h.Users.SetPayment(r.Context(), req.Email, req.Role, req.PayableAmount, req.PaymentStatus); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("payment confirm failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "payment recorded"})
}

type updateProfileRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// UpdateAdminProfile patches fullName / dateOfBirth. This route has no
// guard; see the authorization matrix notes.
func (h *AuthHandler) UpdateAdminProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	if err := h.Users.UpdateProfile(r.Context(), req.Email, req.FullName, req.DateOfBirth); err != nil {
		h.Logger.Error("profile update failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

type upgradePackageRequest struct {
	Email         string  `json:"email"`
	ExtraSeats    int     `json:"extraSeats"`
	PayableAmount float64 `json:"payableAmount"`
}

// UpgradePackage adds employee slots to an admin account. Unguarded route;
// see the authorization matrix notes.
func (h *AuthHandler) UpgradePackage(w http.ResponseWriter, r *http.Request) {
	var req upgradePackageRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" || req.ExtraSeats <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "email and a positive seat count required")
		return
	}

	if err := h.Users.UpgradePackage(r.Context(), req.Email, req.ExtraSeats, req.PayableAmount); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("package upgrade failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "package upgraded"})
}
