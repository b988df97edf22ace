package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/handlers"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/validation"
	"github.com/hugh/orgroster/internal/store"
	"github.com/hugh/orgroster/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type testServer struct {
	*testutil.TestSetup
	router *chi.Mux
}

func setupTestRouter(t *testing.T, uniqueOrgNames bool) *testServer {
	t.Helper()

	tc := testutil.NewTestContext(t)
	t.Cleanup(tc.Cleanup)

	logger := testutil.DiscardLogger()
	validate := validation.New("US")
	authService := testutil.CreateTestAuthService(tc.DB, tc.JWTService, uniqueOrgNames)

	employees := store.NewEmployeeStore(tc.DB, logger)
	teams := store.NewTeamStore(tc.DB, logger)
	assignments := store.NewAssignmentStore(tc.DB, employees, teams, logger)

	authHandler := handlers.NewAuthHandler(authService, validate, logger)
	employeeHandler := handlers.NewEmployeeHandler(employees, validate, logger)
	teamHandler := handlers.NewTeamHandler(teams, validate, logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignments, validate, logger)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authService, logger))
		r.Get("/me", authHandler.Me)

		r.Post("/employees", employeeHandler.Create)
		r.Get("/employees", employeeHandler.List)
		r.Get("/employees/{id}", employeeHandler.Get)
		r.Put("/employees/{id}", employeeHandler.Update)
		r.Delete("/employees/{id}", employeeHandler.Delete)
		r.Get("/employees/{id}/teams", assignmentHandler.EmployeeTeams)

		r.Post("/teams", teamHandler.Create)
		r.Get("/teams", teamHandler.List)
		r.Get("/teams/{id}", teamHandler.Get)
		r.Put("/teams/{id}", teamHandler.Update)
		r.Delete("/teams/{id}", teamHandler.Delete)
		r.Post("/teams/{id}/assign", assignmentHandler.Assign)
		r.Delete("/teams/{id}/unassign", assignmentHandler.Unassign)
		r.Get("/teams/{id}/members", assignmentHandler.Members)

		r.Get("/assigned_members", assignmentHandler.List)
	})

	return &testServer{TestSetup: tc, router: r}
}

// do sends a request as the holder of token; an empty token sends none.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.AuthenticatedRequest(t, method, path, body, token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) dto.ErrorResponse {
	t.Helper()
	testutil.AssertStatus(t, rr, status)

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, code, resp.Code)
	assert.NotEmpty(t, resp.Error)
	return resp
}

func createEmployee(t *testing.T, s *testServer, token, email string) dto.EmployeeResponse {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/employees", map[string]string{"email": email, "firstName": "Test"}, token)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var emp dto.EmployeeResponse
	testutil.ParseJSONResponse(t, rr, &emp)
	return emp
}

func createTeam(t *testing.T, s *testServer, token, name string) dto.TeamResponse {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/teams", map[string]string{"name": name}, token)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var team dto.TeamResponse
	testutil.ParseJSONResponse(t, rr, &team)
	return team
}
