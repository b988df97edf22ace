package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/orgroster/internal/auth"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/database/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "testpassword123"

// SetupTestDB creates an isolated in-memory SQLite database with foreign keys
// enforced, so cascades behave as they do in PostgreSQL.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database and its pragmas alive.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := database.Close(db); err != nil {
		t.Logf("warning: failed to close test database: %v", err)
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestOrg creates a test organisation
func CreateTestOrg(t *testing.T, db *gorm.DB, name string) *models.Organisation {
	t.Helper()

	org := &models.Organisation{Name: name}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organisation: %v", err)
	}

	return org
}

// CreateTestUser creates an admin user for the given organisation with TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, org *models.Organisation) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		OrganisationID: org.ID,
		Email:          "admin-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash:   hash,
		Name:           "Test Admin",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	user.Organisation = org
	return user
}

// CreateTestEmployee inserts an employee directly, bypassing the store.
func CreateTestEmployee(t *testing.T, db *gorm.DB, orgID uint, email string) *models.Employee {
	t.Helper()

	emp := &models.Employee{
		OrganisationID: orgID,
		FirstName:      "Test",
		LastName:       "Employee",
		Email:          email,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

// CreateTestTeam inserts a team directly, bypassing the store.
func CreateTestTeam(t *testing.T, db *gorm.DB, orgID uint, name string) *models.Team {
	t.Helper()

	team := &models.Team{OrganisationID: orgID, Name: name}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateTestAssignment links an employee to a team directly.
func CreateTestAssignment(t *testing.T, db *gorm.DB, orgID, employeeID, teamID uint) *models.EmployeeTeam {
	t.Helper()

	a := &models.EmployeeTeam{OrganisationID: orgID, EmployeeID: employeeID, TeamID: teamID}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour, "orgroster-test")
}

// CreateTestAuthService builds an identity service with the cheapest bcrypt cost.
func CreateTestAuthService(db *gorm.DB, jwtService *auth.JWTService, uniqueOrgNames bool) *auth.Service {
	return auth.NewService(db, jwtService, auth.ServiceConfig{
		BcryptCost:     bcrypt.MinCost,
		UniqueOrgNames: uniqueOrgNames,
	}, DiscardLogger())
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.OrganisationID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Tenant is one organisation with its admin and a valid token.
type Tenant struct {
	Org   *models.Organisation
	User  *models.User
	Token string
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Org        *models.Organisation
	User       *models.User
	Token      string
}

// NewTestContext creates a complete test setup with DB, org, user, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	org := CreateTestOrg(t, db, "Test Organisation")
	user := CreateTestUser(t, db, org)
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Org:        org,
		User:       user,
		Token:      token,
	}
}

// NewTenant adds another organisation with its own admin and token.
func (ts *TestSetup) NewTenant(t *testing.T, name string) *Tenant {
	t.Helper()

	org := CreateTestOrg(t, ts.DB, name)
	user := CreateTestUser(t, ts.DB, org)
	return &Tenant{Org: org, User: user, Token: GenerateTestToken(t, ts.JWTService, user)}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		_ = database.Close(ts.DB)
	}
}
