package routes

import (
	"github.com/gorilla/mux"

	"github.com/SajeedAninda/Sovereign-Assets-Server/handlers"
	"github.com/SajeedAninda/Sovereign-Assets-Server/middleware"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// Set bundles the handlers the router wires up.
type Set struct {
	Auth      *handlers.AuthHandler
	Assets    *handlers.AssetHandler
	Requests  *handlers.RequestHandler
	Custom    *handlers.CustomRequestHandler
	Team      *handlers.TeamHandler
	Analytics *handlers.AnalyticsHandler
	Payments  *handlers.PaymentHandler
	Export    *handlers.ExportHandler
	Health    *handlers.HealthHandler
	Hub       *websocket.Hub
	Users     store.UserStore
}

// RegisterRoutes wires the full route surface. The guard tier of every
// route is part of the wire contract: several mutation routes are
// deliberately public because existing clients call them without a
// session (profile update, package upgrade, asset status change, report
// data). Do not "fix" them without versioning the API.
func RegisterRoutes(r *mux.Router, s *Set) {
	// ====================
	// PUBLIC ROUTES
	// ====================
	r.HandleFunc("/", s.Health.Banner).Methods(MethodsGetOnly...)
	r.HandleFunc("/health", s.Health.HealthCheck).Methods(MethodsGetOnly...)

	r.HandleFunc("/jwt", s.Auth.IssueToken).Methods(MethodsPostOnly...)
	r.HandleFunc("/logout", s.Auth.Logout).Methods(MethodsPostOnly...)

	r.HandleFunc("/adminRegister", s.Auth.RegisterAdmin).Methods(MethodsPostOnly...)
	r.HandleFunc("/employeeRegister", s.Auth.RegisterEmployee).Methods(MethodsPostOnly...)
	r.HandleFunc("/socialEmployee", s.Auth.RegisterSocialEmployee).Methods(MethodsPostOnly...)

	r.HandleFunc("/userData", s.Auth.GetUserData).Methods(MethodsGetOnly...)
	r.HandleFunc("/updateAdmin", s.Auth.UpdateAdminProfile).Methods(MethodsPatchOnly...)
	r.HandleFunc("/upgradePackage", s.Auth.UpgradePackage).Methods(MethodsPatchOnly...)

	r.HandleFunc("/changeAssetStatus/{id}", s.Assets.ChangeAssetStatus).Methods(MethodsPatchOnly...)
	r.HandleFunc("/getAssetDataPDF", s.Assets.GetAssetData).Methods(MethodsGetOnly...)

	r.HandleFunc("/create-payment-intent", s.Payments.CreatePaymentIntent).Methods(MethodsPostOnly...)

	r.HandleFunc("/ws/activity", s.Hub.Serve).Methods("GET")

	// ====================
	// AUTHENTICATED ROUTES
	// ====================
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(middleware.Authenticate)

	authRouter.HandleFunc("/paymentData", s.Auth.GetPaymentData).Methods(MethodsGetOnly...)
	authRouter.HandleFunc("/confirmPayment", s.Auth.ConfirmPayment).Methods(MethodsPatchOnly...)

	authRouter.HandleFunc("/assets", s.Assets.ListAssets).Methods(MethodsGetOnly...)
	authRouter.HandleFunc("/asset/increase/{id}", s.Assets.IncreaseQuantity).Methods(MethodsPatchOnly...)

	authRouter.HandleFunc("/requestAsset", s.Requests.CreateRequest).Methods(MethodsPostOnly...)
	authRouter.HandleFunc("/myRequests", s.Requests.MyRequests).Methods(MethodsGetOnly...)
	authRouter.HandleFunc("/cancelRequest/{id}", s.Requests.CancelRequest).Methods(MethodsDeleteOnly...)
	authRouter.HandleFunc("/returnAsset/{id}", s.Requests.ReturnRequest).Methods(MethodsPatchOnly...)

	authRouter.HandleFunc("/customRequest", s.Custom.Create).Methods(MethodsPostOnly...)
	authRouter.HandleFunc("/myCustomRequests", s.Custom.Mine).Methods(MethodsGetOnly...)
	authRouter.HandleFunc("/customRequest/{id}", s.Custom.Patch).Methods(MethodsPatchOnly...)

	authRouter.HandleFunc("/myTeam", s.Team.MyTeam).Methods(MethodsGetOnly...)

	// ====================
	// ADMIN ROUTES
	// ====================
	adminRouter := r.NewRoute().Subrouter()
	adminRouter.Use(middleware.Authenticate, middleware.RequireAdmin(s.Users))

	adminRouter.HandleFunc("/addAsset", s.Assets.CreateAsset).Methods(MethodsPostOnly...)
	adminRouter.HandleFunc("/asset/decrease/{id}", s.Assets.DecreaseQuantity).Methods(MethodsPatchOnly...)
	adminRouter.HandleFunc("/asset/{id}", s.Assets.GetAsset).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/asset/{id}", s.Assets.UpdateAsset).Methods(MethodsPutOnly...)
	adminRouter.HandleFunc("/asset/{id}", s.Assets.DeleteAsset).Methods(MethodsDeleteOnly...)
	adminRouter.HandleFunc("/assetCount", s.Assets.CountAssets).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/lowStock", s.Assets.LowStock).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/assetReport", s.Export.AssetReport).Methods(MethodsGetOnly...)

	adminRouter.HandleFunc("/requests", s.Requests.CompanyRequests).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/allocatedAssets", s.Requests.AllocatedAssets).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/pendingRequests", s.Requests.PendingRequests).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/approveRequest/{id}", s.Requests.ApproveRequest).Methods(MethodsPatchOnly...)
	adminRouter.HandleFunc("/rejectRequest/{id}", s.Requests.RejectRequest).Methods(MethodsPatchOnly...)

	adminRouter.HandleFunc("/customRequests", s.Custom.ForTeam).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/customRequestStatus/{id}", s.Custom.SetStatus).Methods(MethodsPatchOnly...)

	adminRouter.HandleFunc("/unaffiliated", s.Team.Unaffiliated).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/addToTeam/{id}", s.Team.AddToTeam).Methods(MethodsPatchOnly...)
	adminRouter.HandleFunc("/removeFromTeam/{id}", s.Team.RemoveFromTeam).Methods(MethodsPatchOnly...)
	adminRouter.HandleFunc("/team", s.Team.Team).Methods(MethodsGetOnly...)

	adminRouter.HandleFunc("/mostRequested", s.Analytics.MostRequested).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/assetTypeShare", s.Analytics.AssetTypeShare).Methods(MethodsGetOnly...)
	adminRouter.HandleFunc("/activity", s.Analytics.RecentActivity).Methods(MethodsGetOnly...)
}
