package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/authorization"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	subscriptiondomain "github.com/utilitech/utilicore/internal/subscription/domain"
)

type fakeAuthService struct {
	user authdomain.User
}

func (f *fakeAuthService) Register(context.Context, authdomain.RegisterRequest) (authdomain.User, error) {
	return f.user, nil
}

func (f *fakeAuthService) Login(context.Context, authdomain.LoginRequest) (authdomain.LoginResponse, error) {
	return authdomain.LoginResponse{User: f.user}, nil
}

func (f *fakeAuthService) ResolveUser(context.Context, authdomain.ResolveUserRequest) (authdomain.User, error) {
	return f.user, nil
}

func (f *fakeAuthService) List(context.Context) (authdomain.ListUserResponse, error) {
	return authdomain.ListUserResponse{Users: []authdomain.User{f.user}}, nil
}

func (f *fakeAuthService) GetByID(context.Context, authdomain.GetUserRequest) (authdomain.User, error) {
	return f.user, nil
}

func (f *fakeAuthService) ProfileInfo(context.Context, snowflake.ID) (authdomain.ProfileInfoResponse, error) {
	return authdomain.ProfileInfoResponse{User: f.user}, nil
}

func (f *fakeAuthService) ProfileDetails(context.Context, authdomain.GetUserRequest) (authdomain.ProfileInfoResponse, error) {
	return authdomain.ProfileInfoResponse{User: f.user}, nil
}

type fakeAuthorizer struct {
	err   error
	calls int
}

func (f *fakeAuthorizer) Authorize(context.Context, string, string, string) error {
	f.calls++
	return f.err
}

type fakeSubscriptionService struct {
	deactivated *subscriptiondomain.DeactivateRequest
}

func (f *fakeSubscriptionService) ListSelf(context.Context, subscriptiondomain.ListSubscriptionRequest) (subscriptiondomain.ListSubscriptionResponse, error) {
	return subscriptiondomain.ListSubscriptionResponse{}, nil
}

func (f *fakeSubscriptionService) ListUsers(context.Context, subscriptiondomain.ListSubscriptionRequest) (subscriptiondomain.ListSubscriptionResponse, error) {
	return subscriptiondomain.ListSubscriptionResponse{}, nil
}

func (f *fakeSubscriptionService) Details(context.Context, subscriptiondomain.GetSubscriptionRequest) (servicedomain.ServiceView, error) {
	return servicedomain.ServiceView{}, nil
}

func (f *fakeSubscriptionService) Deactivate(_ context.Context, req subscriptiondomain.DeactivateRequest) (servicedomain.ServiceView, error) {
	f.deactivated = &req
	return servicedomain.ServiceView{}, nil
}

func (f *fakeSubscriptionService) ChangePlan(context.Context, subscriptiondomain.ChangePlanRequest) (servicedomain.ServiceView, error) {
	return servicedomain.ServiceView{}, nil
}

func (f *fakeSubscriptionService) AvailablePlans(context.Context, subscriptiondomain.AvailablePlansRequest) (subscriptiondomain.PlanListResponse, error) {
	return subscriptiondomain.PlanListResponse{}, nil
}

func (f *fakeSubscriptionService) AddonPlans(context.Context, subscriptiondomain.AddonPlansRequest) (subscriptiondomain.PlanListResponse, error) {
	return subscriptiondomain.PlanListResponse{}, nil
}

func (f *fakeSubscriptionService) ActivateAddon(context.Context, subscriptiondomain.ActivateAddonRequest) (servicedomain.ServiceView, error) {
	return servicedomain.ServiceView{}, nil
}

func (f *fakeSubscriptionService) DeactivateAddon(context.Context, subscriptiondomain.DeactivateAddonRequest) (servicedomain.ServiceView, error) {
	return servicedomain.ServiceView{}, nil
}

func newTestServer(t *testing.T, role string, authzErr error) (*Server, *fakeSubscriptionService, *fakeAuthorizer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	subs := &fakeSubscriptionService{}
	authz := &fakeAuthorizer{err: authzErr}
	srv := NewServer(ServerParams{
		Gin:             r,
		GenID:           node,
		Authsvc:         &fakeAuthService{user: authdomain.User{ID: node.Generate(), Role: role, Active: true}},
		AuthzSvc:        authz,
		SubscriptionSvc: subs,
	})
	return srv, subs, authz
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestDeactivateSubscriptionIsPost(t *testing.T) {
	srv, subs, _ := newTestServer(t, authdomain.RoleUser, nil)

	w := doRequest(srv, http.MethodPost, "/subscriptions/12345/deactivate", `{"deactivation_date":"2026-09-30"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, subs.deactivated)
	require.Equal(t, "12345", subs.deactivated.ID)
	require.NotNil(t, subs.deactivated.DeactivationDate)
	require.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), subs.deactivated.DeactivationDate.UTC())

	w = doRequest(srv, http.MethodPut, "/subscriptions/12345/deactivate", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivateSubscriptionBodyOptional(t *testing.T) {
	srv, subs, _ := newTestServer(t, authdomain.RoleUser, nil)

	w := doRequest(srv, http.MethodPost, "/subscriptions/12345/deactivate", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, subs.deactivated)
	require.Nil(t, subs.deactivated.DeactivationDate)
}

func TestUserProfileDetailsOpenToAnyAuthenticatedCaller(t *testing.T) {
	srv, _, authz := newTestServer(t, authdomain.RoleUser, authorization.ErrForbidden)

	// The denying authorizer proves the route carries no role gate.
	w := doRequest(srv, http.MethodGet, "/users/12345/profile-details", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, authz.calls)

	// Gated routes still consult the authorizer.
	w = doRequest(srv, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, 1, authz.calls)
}
