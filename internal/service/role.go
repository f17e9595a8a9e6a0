package service

import (
	"context"

	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/repository"
)

// RoleService provides role-related operations.
type RoleService interface {
	FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	// PermissionSet returns the IDs of every permission granted by the
	// active roles among ids.
	PermissionSet(ctx context.Context, ids []string) (map[string]bool, error)
}

// RoleServiceImpl implements RoleService.
type RoleServiceImpl struct {
	roleRepo repository.RoleRepositoryInterface
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo repository.RoleRepositoryInterface) *RoleServiceImpl {
	return &RoleServiceImpl{roleRepo: roleRepo}
}

func (s *RoleServiceImpl) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	if s.roleRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.roleRepo.FindByIDs(ctx, ids)
}

func (s *RoleServiceImpl) FindByName(ctx context.Context, name string) (*model.Role, error) {
	if s.roleRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.roleRepo.FindByName(ctx, name)
}

func (s *RoleServiceImpl) PermissionSet(ctx context.Context, ids []string) (map[string]bool, error) {
	roles, err := s.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, role := range roles {
		if !role.Active {
			continue
		}
		for _, p := range role.Permissions {
			set[p] = true
		}
	}
	return set, nil
}
