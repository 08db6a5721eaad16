package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
	DeleteUser(ctx context.Context, id ID) (*User, error)

	// Explicit escape hatches from the active-only default scope.
	FetchUserIncludingDeleted(ctx context.Context, uuid UUID) (*User, error)
	RestoreUser(ctx context.Context, id ID) (*User, error)
	ForceDeleteUser(ctx context.Context, id ID) error
}
