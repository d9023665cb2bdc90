// Command devtoken prints an HS256 access token accepted by a server running
// in jwt auth mode. It reads the same configuration as the server.
//
// Usage: devtoken [-user <uuid>] [-email <addr>] [-ttl 24h]
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/auth"
	"github.com/heartmarshall/nova-backend/internal/config"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "user id (random when empty)")
	email := flag.String("email", "dev@example.com", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.Mode != config.AuthModeJWT {
		log.Fatalf("auth mode is %q; tokens can only be minted in %q mode", cfg.Auth.Mode, config.AuthModeJWT)
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("parse -user: %v", err)
		}
	}

	mgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, *ttl)
	token, err := mgr.GenerateAccessToken(domain.Identity{UserID: userID, Email: *email, Role: "authenticated"})
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
