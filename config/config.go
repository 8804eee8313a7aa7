// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

var (
	Port          string
	MongoURI      string
	DatabaseName  string
	JWTKey        []byte
	JWTExpiration time.Duration
	PaymentAPIURL string
	PaymentAPIKey string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	DatabaseName = os.Getenv("DB_NAME")
	if DatabaseName == "" {
		DatabaseName = "SovereignAssets"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	// Sessions are long-lived by contract: one year, no refresh.
	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 365 * 24 * time.Hour
	if expireStr != "" {
		var err error
		dur, err = time.ParseDuration(expireStr)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRE: %s, using 365 days", expireStr)
			dur = 365 * 24 * time.Hour
		}
	}
	JWTExpiration = dur

	PaymentAPIURL = os.Getenv("PAYMENT_API_URL")
	if PaymentAPIURL == "" {
		PaymentAPIURL = "https://api.stripe.com"
	}
	PaymentAPIKey = os.Getenv("PAYMENT_API_KEY")
}
