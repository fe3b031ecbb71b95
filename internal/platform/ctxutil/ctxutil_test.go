// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/platform/ctxutil"
	"github.com/theveganplaylist/server/internal/platform/sec"
)

/*
TestRequestID verifies round-tripping the correlation ID through a context.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	// Absent by default
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestGetLogger_Fallback verifies that a context without a logger yields the
process-wide default instead of nil.
*/
func TestGetLogger_Fallback(t *testing.T) {
	logger := ctxutil.GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, slog.Default(), logger)
}

/*
TestAdminClaims verifies storing and retrieving console identity.
*/
func TestAdminClaims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAdmin(ctx))

	claims := &sec.AuthClaims{Username: "curator", Role: string(sec.RoleAdmin)}
	ctx = ctxutil.WithAdmin(ctx, claims)

	got := ctxutil.GetAdmin(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "curator", got.Username)
}
