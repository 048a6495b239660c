// Copyright (c) 2026 Cat Café. All rights reserved.

package requestutil_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/ctxutil"
	requestutil "github.com/catcafe/catcafe/internal/platform/request"
	"github.com/catcafe/catcafe/internal/platform/sec"
)

func TestRequiredClaims_Authenticated(t *testing.T) {
	request := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	claims := &sec.AuthClaims{UserID: "user-1", Username: "alice"}
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))

	got, err := requestutil.RequiredClaims(request)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice", got.Username)
}

func TestRequiredClaims_Anonymous(t *testing.T) {
	request := httptest.NewRequest("GET", "/api/v1/auth/me", nil)

	_, err := requestutil.RequiredClaims(request)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}
