// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/internal/domain/model"
	apphttp "github.com/guttosm/budget-service/internal/http"
	"github.com/guttosm/budget-service/internal/repository"
	"github.com/guttosm/budget-service/internal/service"
)

// defaultPermissions are seeded at startup. Menu writes are reserved for
// admins; everything else is granted to every user.
var defaultPermissions = []*model.Permission{
	{Name: "menus:read", Description: "Read the menu catalog", Resource: apphttp.ResourceMenus, Action: apphttp.ActionRead, Active: true},
	{Name: "menus:write", Description: "Create, update and delete menus", Resource: apphttp.ResourceMenus, Action: apphttp.ActionWrite, Active: true},
	{Name: "purchases:read", Description: "Read own purchases", Resource: apphttp.ResourcePurchases, Action: apphttp.ActionRead, Active: true},
	{Name: "purchases:write", Description: "Record and edit own purchases", Resource: apphttp.ResourcePurchases, Action: apphttp.ActionWrite, Active: true},
	{Name: "budget:read", Description: "Read monthly budget and statistics", Resource: apphttp.ResourceBudget, Action: apphttp.ActionRead, Active: true},
	{Name: "recommendations:read", Description: "Get combination recommendations", Resource: apphttp.ResourceRecommendations, Action: apphttp.ActionRead, Active: true},
}

// adminOnly lists the permission names withheld from the user role.
var adminOnly = map[string]bool{"menus:write": true}

// initializeDefaultRolesAndPermissions creates the default roles and
// permissions if they don't exist, and brings existing roles up to date.
func initializeDefaultRolesAndPermissions(
	roleRepo repository.RoleRepositoryInterface,
	permissionRepo repository.PermissionRepositoryInterface,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var userPermissions, adminPermissions []string
	for _, def := range defaultPermissions {
		perm := *def
		existing, err := permissionRepo.FindByResourceAndAction(ctx, perm.Resource, perm.Action)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := permissionRepo.Create(ctx, &perm); err != nil {
				log.Warn().Err(err).Str("permission", perm.Name).Msg("Failed to create permission")
				continue
			}
			log.Info().Str("permission", perm.Name).Msg("Created default permission")
		} else {
			perm.ID = existing.ID
		}

		id := perm.ID.Hex()
		adminPermissions = append(adminPermissions, id)
		if !adminOnly[perm.Name] {
			userPermissions = append(userPermissions, id)
		}
	}

	roles := []*model.Role{
		{Name: service.RoleUser, Description: "Standard user role", Permissions: userPermissions, Active: true},
		{Name: service.RoleAdmin, Description: "Menu administrator with full access", Permissions: adminPermissions, Active: true},
	}

	for _, role := range roles {
		existing, err := roleRepo.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := roleRepo.Create(ctx, role); err != nil {
				log.Warn().Err(err).Str("role", role.Name).Msg("Failed to create role")
				continue
			}
			log.Info().Str("role", role.Name).Msg("Created default role")
			continue
		}
		if !sameStrings(existing.Permissions, role.Permissions) {
			if err := roleRepo.SetPermissions(ctx, existing.ID, role.Permissions); err != nil {
				log.Warn().Err(err).Str("role", role.Name).Msg("Failed to update role permissions")
				continue
			}
			log.Info().Str("role", role.Name).Msg("Updated role permissions")
		}
	}

	return nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
