package channel

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchChannelService handles branch sales channel operations
type BranchChannelService struct {
	branchChannelRepo channel.BranchChannelRepository
	cache             ResolutionCache
}

// NewBranchChannelService creates a new BranchChannelService. cache may
// be nil.
func NewBranchChannelService(branchChannelRepo channel.BranchChannelRepository, cache ResolutionCache) *BranchChannelService {
	return &BranchChannelService{branchChannelRepo: branchChannelRepo, cache: cache}
}

// Create activates a sales channel at a branch
func (s *BranchChannelService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateBranchChannelRequest) (*BranchChannelResponse, error) {
	exists, err := s.branchChannelRepo.Exists(ctx, restaurantID, req.BranchID, req.SalesChannelID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This sales channel is already activated at the branch")
	}

	bc, err := channel.NewBranchSalesChannel(restaurantID, req.BranchID, req.SalesChannelID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		bc.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.branchChannelRepo.Save(ctx, bc); err != nil {
		return nil, err
	}

	response := ToBranchChannelResponse(bc)
	return &response, nil
}

// List returns the branch sales channels of a restaurant, optionally of
// one branch
func (s *BranchChannelService) List(ctx context.Context, restaurantID uuid.UUID, branchID *uuid.UUID) ([]BranchChannelResponse, error) {
	var (
		channels []channel.BranchSalesChannel
		err      error
	)
	if branchID != nil {
		channels, err = s.branchChannelRepo.FindByBranch(ctx, restaurantID, *branchID)
	} else {
		channels, err = s.branchChannelRepo.FindAllForRestaurant(ctx, restaurantID)
	}
	if err != nil {
		return nil, err
	}
	return ToBranchChannelResponses(channels), nil
}

// SetActive flips the branch-level kill switch. Price rows are kept.
func (s *BranchChannelService) SetActive(ctx context.Context, restaurantID, id uuid.UUID, active bool) (*BranchChannelResponse, error) {
	bc, err := s.branchChannelRepo.FindByIDForRestaurant(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	bc.SetActive(active)
	if err := s.branchChannelRepo.Save(ctx, bc); err != nil {
		return nil, err
	}
	if s.cache != nil {
		// Best effort; a stale entry expires on its own TTL.
		_ = s.cache.InvalidateBranch(ctx, bc.BranchID)
	}

	response := ToBranchChannelResponse(bc)
	return &response, nil
}
