package user

import (
	"filebox-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:        uDomain.UUID,
		Email:       uDomain.Email,
		DisplayName: uDomain.DisplayName,
		CreatedAt:   uDomain.CreatedAt,
	}

	return u
}

func ToDomainUser(r Request) user.User {
	return user.User{
		Email:       r.Email,
		DisplayName: r.DisplayName,
	}
}
