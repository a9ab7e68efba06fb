// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

var (
	Port         string
	MongoURI     string
	DatabaseName string

	SessionSecret string
	SessionName   string
	SessionDir    string

	UploadDir string
	PublicURL string

	WSTicketSecret []byte
	WSTicketTTL    time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGODB_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	DatabaseName = os.Getenv("DB_NAME")
	if DatabaseName == "" {
		DatabaseName = "ideabank"
	}

	SessionSecret = os.Getenv("SESSION_SECRET")
	if SessionSecret == "" {
		SessionSecret = "dev-session-secret"
		log.Println("SESSION_SECRET not set, using insecure default")
	}

	SessionName = os.Getenv("SESSION_NAME")
	if SessionName == "" {
		SessionName = "ideabank_session"
	}

	SessionDir = os.Getenv("SESSION_DIR")
	if SessionDir == "" {
		SessionDir = os.TempDir()
	}

	UploadDir = os.Getenv("UPLOAD_DIR")
	if UploadDir == "" {
		UploadDir = "uploads"
	}

	PublicURL = os.Getenv("PUBLIC_URL")
	if PublicURL == "" {
		PublicURL = "http://localhost:" + Port
	}

	WSTicketSecret = []byte(os.Getenv("WS_TICKET_SECRET"))
	if len(WSTicketSecret) == 0 {
		WSTicketSecret = []byte(SessionSecret)
	}

	WSTicketTTL = 30 * time.Second
	if ttlStr := os.Getenv("WS_TICKET_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			log.Printf("Invalid WS_TICKET_TTL: %s, using 30s", ttlStr)
		} else {
			WSTicketTTL = ttl
		}
	}

	SMTPHost = os.Getenv("SMTP_HOST")
	SMTPPort = 587
	if p, _ := strconv.Atoi(os.Getenv("SMTP_PORT")); p != 0 {
		SMTPPort = p
	}
	SMTPUser = os.Getenv("SMTP_USER")
	SMTPPass = os.Getenv("SMTP_PASS")
	SMTPFrom = os.Getenv("SMTP_FROM")
}
