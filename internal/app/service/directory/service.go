package directory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/apperr"
	"github.com/clapboard/membership/pkg/tool"
)

// Service resolves Role and AccountType records by name. The expiry cascade
// and approval side effects depend on it for the Normal/User defaults.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) AccountTypeByName(ctx context.Context, name string) (*models.AccountType, error) {
	var at models.AccountType
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&at).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account type %q not found", name)
		}
		return nil, fmt.Errorf("failed to load account type %q: %w", name, err)
	}
	return &at, nil
}

func (s *Service) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role %q not found", name)
		}
		return nil, fmt.Errorf("failed to load role %q: %w", name, err)
	}
	return &r, nil
}

func (s *Service) RoleByID(ctx context.Context, id string) (*models.Role, error) {
	var r models.Role
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role %s not found", id)
		}
		return nil, fmt.Errorf("failed to load role %s: %w", id, err)
	}
	return &r, nil
}

// Seed ensures the default directory records exist. It is idempotent and runs
// on startup; a failure here is fatal since the cascade depends on the seeds.
func (s *Service) Seed(ctx context.Context) error {
	for _, name := range []string{models.AccountTypeNormal} {
		at := models.AccountType{ID: tool.GenerateUUIDV7(), Name: name}
		if err := s.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&at).Error; err != nil {
			return fmt.Errorf("failed to seed account type %q: %w", name, err)
		}
	}
	for _, name := range []string{models.RoleUser, models.RoleAdmin, models.RoleModerator} {
		r := models.Role{ID: tool.GenerateUUIDV7(), Name: name}
		if err := s.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	s.log.Infow("directory seed completed")
	return nil
}
