package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	mutators := []UserType{UserTypeRealtor, UserTypeAdmin}

	assert.True(t, IsAllowed(UserTypeRealtor, mutators...))
	assert.True(t, IsAllowed(UserTypeAdmin, mutators...))
	assert.False(t, IsAllowed(UserTypeBuyer, mutators...))
	assert.True(t, IsAllowed(UserTypeBuyer))
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		WriteJSON(w, http.StatusOK, info)
	})
}

func bearer(t *testing.T, tokens *TokenIssuer, info UserInfo) string {
	t.Helper()
	pair, err := tokens.GenerateTokens(info)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestJWTMiddleware(t *testing.T) {
	tokens := testTokens()
	realtor := UserInfo{ID: 42, Name: "Rita", UserType: UserTypeRealtor}
	h := JWTMiddleware(tokens)(echoUser())

	t.Run("valid token sets caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, tokens, realtor))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got UserInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, realtor, got)
	})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("refresh token rejected", func(t *testing.T) {
		pair, err := tokens.GenerateTokens(realtor)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		old := testTokens()
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, old, realtor))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := testTokens()
		other.secret = []byte("someone-else")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, other, realtor))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := testTokens()
	h := JWTMiddleware(tokens)(RequireRoles(UserTypeRealtor, UserTypeAdmin)(echoUser()))

	cases := []struct {
		role UserType
		want int
	}{
		{UserTypeRealtor, http.StatusOK},
		{UserTypeAdmin, http.StatusOK},
		{UserTypeBuyer, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/home", nil)
			req.Header.Set("Authorization", bearer(t, tokens, UserInfo{ID: 1, Name: "X", UserType: tc.role}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("without identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRoles(UserTypeRealtor)(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/home", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
