package platform

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

// SeedSuperAdmin ensures an approved SUPER_ADMIN account exists.
// Existing accounts are left alone so a redeploy cannot reset a
// password.
func SeedSuperAdmin(ctx context.Context, users types.UserStore, username, password string, logger *slog.Logger) error {
	existing, err := users.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &types.User{
		Username:      username,
		PasswordHash:  string(hash),
		Role:          identity.RoleSuperAdmin,
		AccountStatus: identity.StatusApproved,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		return err
	}
	logger.Info("seeded super admin", "username", username)
	return nil
}
