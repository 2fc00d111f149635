package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"skillshots_backend/internals/constants"
	groupModel "skillshots_backend/internals/features/groups/model"
)

// Validator instance. The role field checks against the role list in
// constants instead of a struct tag, so new roles need one edit only.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return constants.IsValidRole(fl.Field().String())
	})
	return v
}

// UserModel represents the users table
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=2,max=100"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'Learner'" json:"role" validate:"required,role"`

	Groups []groupModel.GroupModel `gorm:"many2many:user_groups;foreignKey:ID;joinForeignKey:user_id;References:GroupID;joinReferences:group_id" json:"groups"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// Normalize enforces the case-insensitive email invariant: emails are
// stored lowered, so the unique index covers every spelling.
func (u *UserModel) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = "Learner"
	}
}

func (u *UserModel) Validate() error {
	u.Normalize()
	return validate.Struct(u)
}

// GroupIDs flattens preloaded group memberships.
func (u *UserModel) GroupIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.Groups))
	for _, g := range u.Groups {
		ids = append(ids, g.GroupID)
	}
	return ids
}
