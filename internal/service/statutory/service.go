package statutory

import (
	"context"
	"errors"
	"fmt"

	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type StatutoryServiceImpl struct {
	db *database.DB
	statutory.StatutoryRepository
}

// CreateBenefitConfig implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) CreateBenefitConfig(ctx context.Context, req statutory.CreateBenefitConfigRequest) (statutory.BenefitConfig, error) {
	if err := req.Validate(); err != nil {
		return statutory.BenefitConfig{}, err
	}

	created, err := s.StatutoryRepository.CreateBenefitConfig(ctx, statutory.BenefitConfig{
		BenefitType: req.BenefitType,
		Year:        req.Year,
		IsActive:    true,
		Table:       req.Table,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, statutory.ErrConfigExists) {
			return statutory.BenefitConfig{}, err
		}
		return statutory.BenefitConfig{}, fmt.Errorf("failed to create benefit config: %w", err)
	}
	return created, nil
}

// ListBenefitConfigs implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) ListBenefitConfigs(ctx context.Context, benefitType string) ([]statutory.BenefitConfig, error) {
	configs, err := s.StatutoryRepository.ListBenefitConfigs(ctx, benefitType)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit configs: %w", err)
	}
	return configs, nil
}

// SetBenefitConfigActive implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) SetBenefitConfigActive(ctx context.Context, id string, active bool) error {
	if err := s.StatutoryRepository.SetBenefitConfigActive(ctx, id, active); err != nil {
		if errors.Is(err, statutory.ErrConfigNotFound) {
			return err
		}
		return fmt.Errorf("failed to update benefit config: %w", err)
	}
	return nil
}

// CreateTaxConfig implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) CreateTaxConfig(ctx context.Context, req statutory.CreateTaxConfigRequest) (statutory.TaxConfig, error) {
	if err := req.Validate(); err != nil {
		return statutory.TaxConfig{}, err
	}

	created, err := s.StatutoryRepository.CreateTaxConfig(ctx, statutory.TaxConfig{
		TaxType:  req.TaxType,
		Year:     req.Year,
		IsActive: true,
		Brackets: req.Brackets,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, statutory.ErrConfigExists) {
			return statutory.TaxConfig{}, err
		}
		return statutory.TaxConfig{}, fmt.Errorf("failed to create tax config: %w", err)
	}
	return created, nil
}

// ListTaxConfigs implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) ListTaxConfigs(ctx context.Context, taxType string) ([]statutory.TaxConfig, error) {
	configs, err := s.StatutoryRepository.ListTaxConfigs(ctx, taxType)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax configs: %w", err)
	}
	return configs, nil
}

// SetTaxConfigActive implements statutory.StatutoryService.
func (s *StatutoryServiceImpl) SetTaxConfigActive(ctx context.Context, id string, active bool) error {
	if err := s.StatutoryRepository.SetTaxConfigActive(ctx, id, active); err != nil {
		if errors.Is(err, statutory.ErrConfigNotFound) {
			return err
		}
		return fmt.Errorf("failed to update tax config: %w", err)
	}
	return nil
}

func NewStatutoryService(
	db *database.DB,
	statutoryRepo statutory.StatutoryRepository,
) statutory.StatutoryService {
	return &StatutoryServiceImpl{
		db:                  db,
		StatutoryRepository: statutoryRepo,
	}
}
