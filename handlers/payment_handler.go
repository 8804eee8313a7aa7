// handlers/payment_handler.go
package handlers

import (
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/payments"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// PaymentHandler fronts the payment gateway for subscription charges.
type PaymentHandler struct {
	Gateway payments.IntentCreator
	Logger  *zap.Logger
}

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

// AmountNotValid is the literal body existing clients match on for a
// non-positive price. It rides on a 200, not an HTTP error.
const AmountNotValid = "Amount not valid"

// CreatePaymentIntent converts the price to integer cents and asks the
// gateway for an intent. A price of zero or less short-circuits with the
// sentinel string and never reaches the gateway.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if req.Price <= 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(AmountNotValid))
		return
	}

	amountCents := priceToCents(req.Price)

	intent, err := h.Gateway.CreateIntent(r.Context(), amountCents, "usd")
	if err != nil {
		h.Logger.Error("payment intent failed", zap.Error(err), zap.Int64("amount", amountCents))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

// priceToCents truncates toward zero; fractional sub-cent amounts are
// dropped, not rounded.
func priceToCents(price float64) int64 {
	return int64(math.Trunc(price * 100))
}
