package services

import (
	"log/slog"

	"crmsystem-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AccountService provisions the customer-facing side of a new login. It
// replaces the save-signal side effects of older designs with explicit calls
// made by the registration handler.
type AccountService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAccountService(db *gorm.DB, logger *slog.Logger) *AccountService {
	return &AccountService{db: db, logger: logger}
}

// ProvisionCustomerProfile attaches the "customer" role to the user and
// get-or-creates their Customer profile. Safe to call more than once.
func (s *AccountService) ProvisionCustomerProfile(user *models.User) (*models.Customer, error) {
	var role models.Role
	if err := s.db.Where(models.Role{Name: models.RoleCustomer}).
		FirstOrCreate(&role).Error; err != nil {
		return nil, errors.Wrap(err, "ensure customer role")
	}

	if err := s.db.Model(user).Association("Roles").Append(&role); err != nil {
		return nil, errors.Wrap(err, "assign customer role")
	}

	var customer models.Customer
	err := s.db.Where(models.Customer{UserID: &user.ID}).
		Attrs(models.Customer{Name: user.Username, Email: user.Email}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, errors.Wrap(err, "provision customer profile")
	}

	s.logger.Info("customer profile provisioned", "user", user.Username, "customer", customer.ID)
	return &customer, nil
}

// CustomerForUser resolves the Customer profile linked to a login.
func (s *AccountService) CustomerForUser(userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
