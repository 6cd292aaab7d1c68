package service

import (
	"context"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/common_library/ctxdata"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

func getUserEmail(ctx context.Context) (string, error) {
	email, ok := ctxdata.GetUserEmail(ctx)
	if !ok {
		return "", errdefs.ErrAuthentication
	}
	return email, nil
}

func getRole(ctx context.Context) (model.Role, error) {
	roleString, ok := ctxdata.GetUserRole(ctx)
	if !ok {
		return "", errdefs.ErrAuthentication
	}
	role := model.Role(roleString)
	if !role.IsValid() {
		return "", errdefs.ErrAuthentication
	}
	return role, nil
}

// ensureCurrentUserRole returns the caller's email when their role is one
// of roles.
func ensureCurrentUserRole(ctx context.Context, roles ...model.Role) (string, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return "", err
	}
	role, err := getRole(ctx)
	if err != nil {
		return "", err
	}
	if !slices.Contains(roles, role) {
		return "", errdefs.ErrPermissionDenied
	}
	return email, nil
}
