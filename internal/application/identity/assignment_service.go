package identity

import (
	"context"
	"errors"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/identity"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentService handles staff role assignments and their conflict
// rule
type AssignmentService struct {
	assignmentRepo identity.AssignmentRepository
	roleRepo       identity.RoleRepository
	userRepo       identity.UserRepository
	branchRepo     identity.BranchRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo identity.AssignmentRepository,
	roleRepo identity.RoleRepository,
	userRepo identity.UserRepository,
	branchRepo identity.BranchRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		roleRepo:       roleRepo,
		userRepo:       userRepo,
		branchRepo:     branchRepo,
	}
}

// check runs the conflict rule for a prospective assignment
func (s *AssignmentService) check(ctx context.Context, restaurantID uuid.UUID, candidate *identity.StaffAssignment) error {
	role, err := s.roleRepo.FindByIDForRestaurant(ctx, restaurantID, candidate.RoleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.ErrCodeValidation, "Role does not exist")
		}
		return err
	}

	existing, err := s.assignmentRepo.FindActiveByUserAndRole(ctx, restaurantID, candidate.UserID, candidate.RoleID)
	if err != nil {
		return err
	}
	return identity.CheckAssignmentConflict(candidate, existing, role.Name)
}

// Validate runs the conflict check without persisting anything
func (s *AssignmentService) Validate(ctx context.Context, restaurantID uuid.UUID, req ValidateAssignmentRequest) (*ValidateAssignmentResponse, error) {
	candidate, err := identity.NewStaffAssignment(restaurantID, req.UserID, req.RoleID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		candidate.IsActive = *req.IsActive
	}

	if err := s.check(ctx, restaurantID, candidate); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return &ValidateAssignmentResponse{Valid: false, Code: domainErr.Code, Message: domainErr.Message}, nil
		}
		return nil, err
	}
	return &ValidateAssignmentResponse{Valid: true}, nil
}

// Save validates and persists a new assignment
func (s *AssignmentService) Save(ctx context.Context, restaurantID uuid.UUID, req SaveAssignmentRequest) (*AssignmentResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "User does not exist")
		}
		return nil, err
	}

	if req.BranchID != nil {
		if _, err := s.branchRepo.FindByIDForRestaurant(ctx, restaurantID, *req.BranchID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(shared.ErrCodeValidation, "Branch does not exist")
			}
			return nil, err
		}
	}

	assignment, err := identity.NewStaffAssignment(restaurantID, req.UserID, req.RoleID, req.BranchID)
	if err != nil {
		return nil, err
	}

	if err := s.check(ctx, restaurantID, assignment); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// ListByUser returns the assignments of a user
func (s *AssignmentService) ListByUser(ctx context.Context, restaurantID, userID uuid.UUID) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByUser(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// Deactivate turns an assignment off
func (s *AssignmentService) Deactivate(ctx context.Context, restaurantID, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	assignment.Deactivate()
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}
