package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var Validate = validator.New()

type CreateUserRequest struct {
	FullName string      `json:"full_name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     string      `json:"role" validate:"required,oneof=Learner Creator"`
	GroupIDs []uuid.UUID `json:"group_ids"`
}

// Pointer fields: only what the caller sends gets updated.
type UpdateUserRequest struct {
	FullName *string      `json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     *string      `json:"role" validate:"omitempty,oneof=Learner Creator"`
	Password *string      `json:"password" validate:"omitempty,min=8"`
	GroupIDs *[]uuid.UUID `json:"group_ids"`
}
