package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/database/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrEmailExists        = apperr.Conflict("Email already exists")
	ErrOrgNameExists      = apperr.Conflict("Organisation name already exists")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
)

// ServiceConfig carries the identity policies chosen at startup.
type ServiceConfig struct {
	BcryptCost int
	// UniqueOrgNames rejects a registration whose organisation name is taken.
	UniqueOrgNames bool
}

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	cfg    ServiceConfig
	decoy  *decoyHash
	logger *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, cfg ServiceConfig, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		db:     db,
		jwt:    jwt,
		cfg:    cfg,
		decoy:  &decoyHash{cost: cfg.BcryptCost},
		logger: logger,
	}
}

type RegisterInput struct {
	OrgName   string
	AdminName string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token string
	User  *models.User
}

// Register creates an organisation and its admin user in one transaction and
// returns a credential for the new user.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)
	orgName := strings.TrimSpace(input.OrgName)
	adminName := strings.TrimSpace(input.AdminName)

	details := map[string]string{}
	if orgName == "" {
		details["orgName"] = "Organisation name is required"
	}
	if adminName == "" {
		details["adminName"] = "Admin name is required"
	}
	if len(details) > 0 {
		return nil, apperr.Validation("Validation failed", details)
	}

	// Skip the bcrypt cost for emails that are already taken. The check is
	// repeated inside the transaction and backed by ux_users_email.
	taken, err := emailTaken(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, apperr.Internal("auth.register", err)
	}
	if taken {
		return nil, ErrEmailExists.WithOp("auth.register")
	}

	hash, err := HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("auth.register", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailExists
		}

		if s.cfg.UniqueOrgNames {
			if err := lockOrgName(tx, orgName); err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.Organisation{}).Where("name = ?", orgName).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrOrgNameExists
			}
		}

		org := models.Organisation{Name: orgName}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		user = models.User{
			OrganisationID: org.ID,
			Email:          email,
			PasswordHash:   hash,
			Name:           adminName,
			Organisation:   &org,
		}
		return tx.Omit("Organisation").Create(&user).Error
	})
	if err != nil {
		var appErr *apperr.Error
		switch {
		case errors.As(err, &appErr):
			return nil, appErr.WithOp("auth.register")
		case database.IsUniqueViolation(err):
			// Lost a race with a concurrent registration for the same email.
			return nil, ErrEmailExists.WithOp("auth.register")
		default:
			return nil, apperr.Internal("auth.register", err)
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.OrganisationID)
	if err != nil {
		return nil, apperr.Internal("auth.register", err)
	}

	s.logger.Info("registered organisation",
		"organisation_id", user.OrganisationID,
		"user_id", user.ID,
	)

	return &AuthResponse{Token: token, User: &user}, nil
}

// Login verifies an email and password. Unknown emails and wrong passwords
// fail with the same error.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Organisation").
		Where("email = ?", NormalizeEmail(input.Email)).
		First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			s.decoy.compare(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal("auth.login", err)
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.OrganisationID)
	if err != nil {
		return nil, apperr.Internal("auth.login", err)
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// VerifyCredential validates a bearer token and returns its claims.
func (s *Service) VerifyCredential(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.jwt.ValidateToken(token)
}

// GetUser loads a user within its organisation.
func (s *Service) GetUser(ctx context.Context, orgID, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Organisation").
		Where("id = ? AND organisation_id = ?", userID, orgID).
		First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal("auth.get_user", err)
	}
	return &user, nil
}

func emailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockOrgName holds a transaction-scoped advisory lock on the organisation
// name, so a concurrent registration for the same name waits and then sees
// the committed row. SQLite already serialises writers.
func lockOrgName(tx *gorm.DB, name string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", name).Error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
