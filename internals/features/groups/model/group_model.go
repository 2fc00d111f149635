package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupModel is a sharing audience ("department"). The share-with-everyone
// group is an ordinary row whose id gets pinned in app settings at bootstrap.
type GroupModel struct {
	GroupID   uuid.UUID `gorm:"column:group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"group_id"`
	GroupName string    `gorm:"column:group_name;size:100;not null" json:"group_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GroupModel) TableName() string {
	return "groups"
}
