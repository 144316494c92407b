package services

import (
	"context"

	"flower-backend/internal/apperr"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
)

type FarmerService struct {
	Repo  *repositories.FarmerRepository
	Audit *AuditService
}

func NewFarmerService(repo *repositories.FarmerRepository, audit *AuditService) *FarmerService {
	return &FarmerService{Repo: repo, Audit: audit}
}

func (s *FarmerService) CreateFarmer(ctx context.Context, req *models.CreateFarmerRequest, userID int) (*models.Farmer, error) {
	if req.Code == "" || req.Name == "" || req.Phone == "" {
		return nil, apperr.BadRequest("VALIDATION", "code, name and phone are required")
	}

	existing, err := s.Repo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("VALIDATION", "phone already registered to another farmer")
	}

	farmer := &models.Farmer{
		Code:    req.Code,
		Name:    req.Name,
		Village: req.Village,
		Phone:   req.Phone,
	}
	if err := s.Repo.Create(ctx, farmer); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, userID, models.AuditCreate, "farmer", farmer.ID, nil, farmer)
	return farmer, nil
}

func (s *FarmerService) GetFarmer(ctx context.Context, id int) (*models.Farmer, error) {
	farmer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, apperr.NotFound("INVALID_FARMER", "farmer not found")
	}
	return farmer, nil
}

func (s *FarmerService) ListFarmers(ctx context.Context, page, perPage int) ([]models.Farmer, int, error) {
	return s.Repo.List(ctx, page, perPage)
}

func (s *FarmerService) UpdateFarmer(ctx context.Context, id int, req *models.UpdateFarmerRequest, userID int) (*models.Farmer, error) {
	farmer, err := s.GetFarmer(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *farmer

	if req.Name != "" {
		farmer.Name = req.Name
	}
	if req.Village != "" {
		farmer.Village = req.Village
	}
	if req.Phone != "" && req.Phone != farmer.Phone {
		existing, err := s.Repo.GetByPhone(ctx, req.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.BadRequest("VALIDATION", "phone already registered to another farmer")
		}
		farmer.Phone = req.Phone
	}
	if req.IsActive != nil {
		farmer.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(ctx, farmer); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, userID, models.AuditUpdate, "farmer", farmer.ID, &old, farmer)
	return farmer, nil
}

// DeleteFarmer refuses while the farmer still has entries not locked into an
// approved or paid settlement.
func (s *FarmerService) DeleteFarmer(ctx context.Context, id, userID int) error {
	farmer, err := s.GetFarmer(ctx, id)
	if err != nil {
		return err
	}

	open, err := s.Repo.CountOpenEntries(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return apperr.BadRequest("CANNOT_DELETE", "farmer has unsettled entries")
	}

	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.Audit.Record(ctx, userID, models.AuditDelete, "farmer", id, farmer, nil)
	return nil
}

func (s *FarmerService) GetLedger(ctx context.Context, id int) (*models.FarmerLedger, error) {
	ledger, err := s.Repo.GetLedger(ctx, id)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, apperr.NotFound("INVALID_FARMER", "farmer not found")
	}
	return ledger, nil
}
