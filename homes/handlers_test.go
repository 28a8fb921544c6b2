package homes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/realtor-go/apperror"
	"github.com/user/realtor-go/auth"
	"github.com/user/realtor-go/config"
)

// MockService is a mock implementation of Service.
type MockService struct {
	mock.Mock
}

func (m *MockService) ListHomes(ctx context.Context, filter Filter) ([]HomeResponse, error) {
	args := m.Called(ctx, filter)
	homes, _ := args.Get(0).([]HomeResponse)
	return homes, args.Error(1)
}

func (m *MockService) GetHome(ctx context.Context, id int) (*HomeResponse, error) {
	args := m.Called(ctx, id)
	home, _ := args.Get(0).(*HomeResponse)
	return home, args.Error(1)
}

func (m *MockService) CreateHome(ctx context.Context, req CreateHomeRequest, realtorID int) (*HomeResponse, error) {
	args := m.Called(ctx, req, realtorID)
	home, _ := args.Get(0).(*HomeResponse)
	return home, args.Error(1)
}

func (m *MockService) GetRealtorByHome(ctx context.Context, id int) (*Realtor, error) {
	args := m.Called(ctx, id)
	realtor, _ := args.Get(0).(*Realtor)
	return realtor, args.Error(1)
}

func (m *MockService) UpdateHomeByID(ctx context.Context, id int, req UpdateHomeRequest) (*HomeResponse, error) {
	args := m.Called(ctx, id, req)
	home, _ := args.Get(0).(*HomeResponse)
	return home, args.Error(1)
}

func (m *MockService) DeleteHomeByID(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

var (
	owner   = auth.UserInfo{ID: 42, Name: "Rita", UserType: auth.UserTypeRealtor}
	rival   = auth.UserInfo{ID: 7, Name: "Ray", UserType: auth.UserTypeRealtor}
	admin   = auth.UserInfo{ID: 1, Name: "Ada", UserType: auth.UserTypeAdmin}
	buyer   = auth.UserInfo{ID: 9, Name: "Bo", UserType: auth.UserTypeBuyer}
	tokens  = auth.NewTokenIssuer(config.AuthConfig{JWTSecret: "test-secret", AccessTokenDuration: time.Minute, RefreshTokenDuration: time.Hour})
	anyCtx  = mock.Anything
	ownedBy = &Realtor{ID: 42, Name: "Rita", Email: "rita@x.com", Phone: "555 555-0123"}
)

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/home", func(r chi.Router) {
		NewHandler(svc, zap.NewNop()).RegisterRoutes(r, tokens)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path string, caller *auth.UserInfo, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		pair, err := tokens.GenerateTokens(*caller)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListHomes_EmptyResultIsEmptyArray(t *testing.T) {
	svc := new(MockService)
	svc.On("ListHomes", anyCtx, Filter{}).Return(nil, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/home", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListHomes_PassesFilterThrough(t *testing.T) {
	svc := new(MockService)
	svc.On("ListHomes", anyCtx, mock.MatchedBy(func(f Filter) bool {
		return assert.ObjectsAreEqual(map[string]interface{}{
			"city":         "Toronto",
			"price":        map[string]interface{}{"gte": 100000.0},
			"propertyType": PropertyTypeCondo,
		}, f.Fields())
	})).Return([]HomeResponse{{ID: 1, City: "Toronto"}, {ID: 2, City: "Toronto"}}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/home?city=Toronto&minPrice=100000&propertyType=CONDO", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []HomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	svc.AssertExpectations(t)
}

func TestListHomes_InvalidFilter(t *testing.T) {
	svc := new(MockService)

	rec := do(t, newRouter(svc), http.MethodGet, "/home?maxPrice=lots", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListHomes", mock.Anything, mock.Anything)
}

func TestGetHome(t *testing.T) {
	svc := new(MockService)
	svc.On("GetHome", anyCtx, 3).Return(&HomeResponse{ID: 3, Images: []string{"a", "b"}}, nil)
	svc.On("GetHome", anyCtx, 4).Return(nil, apperror.NewNotFoundError("home with ID 4 not found", nil))
	router := newRouter(svc)

	rec := do(t, router, http.MethodGet, "/home/3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got HomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got.Images)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/home/4", nil, "").Code)

	bad := do(t, router, http.MethodGet, "/home/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Contains(t, bad.Body.String(), "numeric string is expected")
}

func TestGetRealtor_RequiresSignIn(t *testing.T) {
	svc := new(MockService)
	svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)
	router := newRouter(svc)

	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "/home/5/realtor", nil, "").Code)

	rec := do(t, router, http.MethodGet, "/home/5/realtor", &buyer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got Realtor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *ownedBy, got)
}

const createBody = `{"address":"12 Main St","city":"Toronto","price":350000,"land_size":4400,
	"number_of_bedrooms":3,"number_of_bathrooms":2,"property_type":"CONDO",
	"images":[{"url":"https://img.example.com/1.jpg"}]}`

func TestCreateHome(t *testing.T) {
	t.Run("realtor owns the new listing", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateHome", anyCtx, mock.MatchedBy(func(req CreateHomeRequest) bool {
			return req.City == "Toronto" && len(req.Images) == 1
		}), owner.ID).Return(&HomeResponse{ID: 10, RealtorID: owner.ID}, nil)

		rec := do(t, newRouter(svc), http.MethodPost, "/home", &owner, createBody)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("buyer is forbidden", func(t *testing.T) {
		svc := new(MockService)
		rec := do(t, newRouter(svc), http.MethodPost, "/home", &buyer, createBody)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "CreateHome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		svc := new(MockService)
		rec := do(t, newRouter(svc), http.MethodPost, "/home", nil, createBody)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := new(MockService)
		rec := do(t, newRouter(svc), http.MethodPost, "/home", &owner, `{"city":"Toronto","property_type":"CASTLE"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateHome", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateHome_Ownership(t *testing.T) {
	body := `{"price":400000}`

	t.Run("non-owner realtor is refused before any mutation", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)

		rec := do(t, newRouter(svc), http.MethodPut, "/home/5", &rival, body)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "UpdateHomeByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin who does not own the listing is refused", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)

		rec := do(t, newRouter(svc), http.MethodPut, "/home/5", &admin, body)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "UpdateHomeByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner updates exactly once", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)
		svc.On("UpdateHomeByID", anyCtx, 5, mock.MatchedBy(func(req UpdateHomeRequest) bool {
			return req.Price != nil && *req.Price == 400000 && req.City == nil
		})).Return(&HomeResponse{ID: 5, Price: 400000}, nil).Once()

		rec := do(t, newRouter(svc), http.MethodPut, "/home/5", &owner, body)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		svc.AssertNumberOfCalls(t, "UpdateHomeByID", 1)
	})

	t.Run("missing home is not found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 99).Return(nil, apperror.NewNotFoundError("home with ID 99 not found", nil))

		rec := do(t, newRouter(svc), http.MethodPut, "/home/99", &owner, body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "UpdateHomeByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteHome_Ownership(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)
		svc.On("DeleteHomeByID", anyCtx, 5).Return(nil).Once()

		rec := do(t, newRouter(svc), http.MethodDelete, "/home/5", &owner, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertNumberOfCalls(t, "DeleteHomeByID", 1)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetRealtorByHome", anyCtx, 5).Return(ownedBy, nil)

		rec := do(t, newRouter(svc), http.MethodDelete, "/home/5", &rival, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "DeleteHomeByID", mock.Anything, mock.Anything)
	})

	t.Run("buyer never reaches the ownership check", func(t *testing.T) {
		svc := new(MockService)

		rec := do(t, newRouter(svc), http.MethodDelete, "/home/5", &buyer, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "GetRealtorByHome", mock.Anything, mock.Anything)
	})
}

func TestUpdateAssignments(t *testing.T) {
	city := "Ottawa"
	price := 10.5
	pt := PropertyTypeResidential

	sets, args := updateAssignments(UpdateHomeRequest{City: &city, Price: &price, PropertyType: &pt})

	assert.Equal(t, []string{"city = $1", "price = $2", "property_type = $3"}, sets)
	assert.Equal(t, []interface{}{"Ottawa", 10.5, "RESIDENTIAL"}, args)

	sets, args = updateAssignments(UpdateHomeRequest{})
	assert.Empty(t, sets)
	assert.Empty(t, args)
}
