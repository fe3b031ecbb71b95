// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package admin authenticates the console account.

There is a single operator account, configured through the environment as
a username plus a bcrypt password hash; no account data lives in the
database. A successful login yields a short-lived HS256 JWT carrying the
admin role, which the catalogue's mutation endpoints check through the
shared authorization middleware.
*/
package admin

import (
	"crypto/subtle"
	"log/slog"

	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/constants"
	"github.com/theveganplaylist/server/internal/platform/sec"
)

// # Service Layer

// Service verifies console credentials and issues access tokens.
type Service struct {
	username     string
	passwordHash string
	tokens       *sec.TokenService
	logger       *slog.Logger
}

// NewService constructs the console authentication [Service].
func NewService(username, passwordHash string, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

// Session is a successful login result.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
	Role      string `json:"role"`
}

/*
Login checks the supplied credentials and returns a fresh session.

The username comparison is constant-time and the bcrypt check always runs,
so a wrong username costs the same as a wrong password. Failures are
reported as a single generic unauthorized error; the response never
reveals which part was wrong.
*/
func (service *Service) Login(username, password string) (*Session, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(service.username)) == 1
	passwordOK := sec.CheckPasswordHash(password, service.passwordHash)

	if !usernameOK || !passwordOK {
		service.logger.Warn("admin_login_failed", slog.String("username", username))
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.GenerateAccessToken(service.username, string(sec.RoleAdmin), constants.AdminTokenTTL)
	if err != nil {
		return nil, err
	}

	service.logger.Info("admin_login", slog.String("username", service.username))

	return &Session{
		Token:     token,
		ExpiresIn: int64(constants.AdminTokenTTL.Seconds()),
		Role:      string(sec.RoleAdmin),
	}, nil
}
