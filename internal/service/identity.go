package service

import (
	"fmt"

	"anoa.com/schoolattendance/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// newIdentity builds a User account with its role fixed at construction
// time. Every account in the system goes through here so a record can never
// exist without an explicit role.
func newIdentity(role *model.Role, username, firstName, lastName, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	return &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		FirstName:    firstName,
		LastName:     lastName,
		RoleID:       &roleID,
		Role:         *role,
	}, nil
}
