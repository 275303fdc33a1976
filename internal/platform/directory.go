package platform

import (
	"context"

	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

// Directory adapts a UserStore to the gate's UserDirectory contract:
// a fresh lookup per call, nil for an unknown username.
type Directory struct {
	Users types.UserStore
}

func (d *Directory) FindByUsername(ctx context.Context, username string) (*identity.DirectoryRecord, error) {
	u, err := d.Users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return u.Directory(), nil
}
