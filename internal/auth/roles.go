package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hostel-cms/complaint-service/internal/domain"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// RequireRole fails with Forbidden unless the caller has role.
func RequireRole(identity domain.Identity, role domain.Role) error {
	if identity.Role != role {
		return apperrors.NewForbidden(fmt.Sprintf("%s access only", role))
	}
	return nil
}

// RequireOwnerOrRole passes when the caller owns the resource or holds role.
func RequireOwnerOrRole(identity domain.Identity, ownerID string, role domain.Role) error {
	if identity.Role == role {
		return nil
	}
	if ownerID != "" && identity.ID == ownerID {
		return nil
	}
	return apperrors.NewForbidden("forbidden")
}

// RequireRoleHandler is the route-level form of RequireRole.
func RequireRoleHandler(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := MustIdentity(c)
		if err != nil {
			return err
		}
		if err := RequireRole(identity, role); err != nil {
			return err
		}
		return c.Next()
	}
}
