package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// TopicProgressModel tracks per-(user, topic) completion.
// Status only ever moves Pending → Completed.
type TopicProgressModel struct {
	TopicProgressID          uint       `gorm:"column:topic_progress_id;primaryKey" json:"topic_progress_id"`
	TopicProgressUserID      uuid.UUID  `gorm:"column:topic_progress_user_id;type:uuid;not null;uniqueIndex:ux_progress_user_topic" json:"topic_progress_user_id"`
	TopicProgressTopicID     uuid.UUID  `gorm:"column:topic_progress_topic_id;type:uuid;not null;uniqueIndex:ux_progress_user_topic" json:"topic_progress_topic_id"`
	TopicProgressStatus      string     `gorm:"column:topic_progress_status;type:varchar(20);not null;default:'Pending'" json:"topic_progress_status"`
	TopicProgressCompletedAt *time.Time `gorm:"column:topic_progress_completed_at" json:"topic_progress_completed_at,omitempty"`
	LastUpdated              time.Time  `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

func (TopicProgressModel) TableName() string {
	return "topic_progress"
}

func (p *TopicProgressModel) IsCompleted() bool {
	return p.TopicProgressStatus == StatusCompleted
}

// UserPointModel accumulates leaderboard points, awarded once per
// completed topic.
type UserPointModel struct {
	UserPointID     uint      `gorm:"column:user_point_id;primaryKey" json:"user_point_id"`
	UserPointUserID uuid.UUID `gorm:"column:user_point_user_id;type:uuid;not null;unique" json:"user_point_user_id"`
	UserPointTotal  int       `gorm:"column:user_point_total;not null;default:0" json:"user_point_total"`
	LastUpdated     time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

func (UserPointModel) TableName() string {
	return "user_points"
}
