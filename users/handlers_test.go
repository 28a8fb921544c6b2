package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/user/realtor-go/apperror"
	"github.com/user/realtor-go/auth"
	"github.com/user/realtor-go/config"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetUserProfile(ctx context.Context, userID int) (*UserProfileResponse, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*UserProfileResponse)
	return p, args.Error(1)
}

func (m *MockProfileService) UpdateUserProfile(ctx context.Context, userID int, req *UpdateUserProfileRequest) (*UserProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	p, _ := args.Get(0).(*UserProfileResponse)
	return p, args.Error(1)
}

var testTokens = auth.NewTokenIssuer(config.AuthConfig{
	JWTSecret:            "test-secret",
	AccessTokenDuration:  time.Minute,
	RefreshTokenDuration: time.Hour,
})

func send(t *testing.T, svc ProfileService, method, body string, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/users", func(r chi.Router) {
		NewUserHandlers(svc).RegisterRoutes(r, testTokens)
	})

	req := httptest.NewRequest(method, "/users/me", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signedIn {
		pair, err := testTokens.GenerateTokens(auth.UserInfo{ID: 42, Name: "Rita", UserType: auth.UserTypeRealtor})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetUserProfile(t *testing.T) {
	svc := new(MockProfileService)
	svc.On("GetUserProfile", mock.Anything, 42).
		Return(&UserProfileResponse{ID: 42, Name: "Rita", Email: "rita@x.com", UserType: auth.UserTypeRealtor}, nil)

	rec := send(t, svc, http.MethodGet, "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got UserProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Rita", got.Name)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestHandleGetUserProfile_RequiresToken(t *testing.T) {
	svc := new(MockProfileService)

	rec := send(t, svc, http.MethodGet, "", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GetUserProfile", mock.Anything, mock.Anything)
}

func TestHandleUpdateUserProfile(t *testing.T) {
	t.Run("updates the caller only", func(t *testing.T) {
		svc := new(MockProfileService)
		svc.On("UpdateUserProfile", mock.Anything, 42, mock.MatchedBy(func(req *UpdateUserProfileRequest) bool {
			return req.Phone != nil && *req.Phone == "(555) 555-0199" && req.Name == nil
		})).Return(&UserProfileResponse{ID: 42, Phone: "(555) 555-0199"}, nil)

		rec := send(t, svc, http.MethodPut, `{"phone":"(555) 555-0199"}`, true)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := new(MockProfileService)
		rec := send(t, svc, http.MethodPut, `{}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid phone", func(t *testing.T) {
		svc := new(MockProfileService)
		rec := send(t, svc, http.MethodPut, `{"phone":"12"}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateUserProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := new(MockProfileService)
		svc.On("UpdateUserProfile", mock.Anything, 42, mock.Anything).
			Return(nil, apperror.NewNotFoundError("user with ID 42 not found", nil))
		rec := send(t, svc, http.MethodPut, `{"name":"R"}`, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBuildProfileUpdate(t *testing.T) {
	name := "  Rita  "
	phone := "555 555-0123"

	sets, args, argID := buildProfileUpdate(&UpdateUserProfileRequest{Name: &name, Phone: &phone})
	assert.Equal(t, []string{"name = $1", "phone = $2", "updated_at = now()"}, sets)
	assert.Equal(t, []interface{}{"Rita", "555 555-0123"}, args)
	assert.Equal(t, 3, argID)

	sets, args, argID = buildProfileUpdate(&UpdateUserProfileRequest{})
	assert.Empty(t, sets)
	assert.Empty(t, args)
	assert.Equal(t, 1, argID)
}
