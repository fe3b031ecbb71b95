// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package admin_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/sec"
	"github.com/theveganplaylist/server/internal/users/admin"
)

func newService(t *testing.T) (*admin.Service, *sec.TokenService) {
	t.Helper()

	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "test")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return admin.NewService("curator", hash, tokens, logger), tokens
}

/*
TestLogin_Success verifies a valid credential pair yields a signed admin
token whose claims carry the configured username and role.
*/
func TestLogin_Success(t *testing.T) {
	service, tokens := newService(t)

	session, err := service.Login("curator", "correct horse battery staple")
	require.NoError(t, err)

	assert.Equal(t, string(sec.RoleAdmin), session.Role)
	assert.Positive(t, session.ExpiresIn)

	claims, err := tokens.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "curator", claims.Username)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}

/*
TestLogin_Rejections verifies every bad credential combination collapses
into the same generic unauthorized error.
*/
func TestLogin_Rejections(t *testing.T) {
	service, _ := newService(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong_password", username: "curator", password: "nope"},
		{name: "wrong_username", username: "intruder", password: "correct horse battery staple"},
		{name: "both_wrong", username: "intruder", password: "nope"},
		{name: "empty", username: "", password: ""},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			session, err := service.Login(testCase.username, testCase.password)
			assert.Nil(t, session)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "UNAUTHORIZED", appError.Code)
		})
	}
}
