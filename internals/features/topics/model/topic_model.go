package model

import (
	"time"

	"github.com/google/uuid"

	groupModel "skillshots_backend/internals/features/groups/model"
	userModel "skillshots_backend/internals/features/users/user/model"
)

/* =========================
   Content block types
========================= */

const (
	BlockParagraph = "paragraph"
	BlockImage     = "image"
	BlockVideo     = "video"
	BlockDocument  = "document"
)

func IsValidBlockType(t string) bool {
	switch t {
	case BlockParagraph, BlockImage, BlockVideo, BlockDocument:
		return true
	}
	return false
}

/* =========================
   Topic
========================= */

type TopicModel struct {
	TopicID       uuid.UUID `gorm:"column:topic_id;type:uuid;default:gen_random_uuid();primaryKey" json:"topic_id"`
	TopicTitle    string    `gorm:"column:topic_title;size:200;not null" json:"topic_title"`
	TopicCategory string    `gorm:"column:topic_category;size:100;not null;default:'General'" json:"topic_category"`
	TopicAuthorID uuid.UUID `gorm:"column:topic_author_id;type:uuid;not null" json:"topic_author_id"`
	TopicReadTime int       `gorm:"column:topic_read_time;not null;default:1" json:"topic_read_time"`
	TopicImageURL string    `gorm:"column:topic_image_url" json:"topic_image_url"`
	TopicIsSOP    bool      `gorm:"column:topic_is_sop;not null;default:false" json:"topic_is_sop"`

	Blocks []TopicContentBlockModel `gorm:"foreignKey:BlockTopicID;references:TopicID;constraint:OnDelete:CASCADE" json:"content"`

	// The two sharing channels. The authoring layer keeps them mutually
	// exclusive per save, but the access resolver ORs them, so a topic
	// migrated in with both populated still resolves correctly.
	SharedGroups []groupModel.GroupModel `gorm:"many2many:topic_group_shares;foreignKey:TopicID;joinForeignKey:topic_id;References:GroupID;joinReferences:group_id" json:"shared_groups"`
	SharedUsers  []userModel.UserModel   `gorm:"many2many:topic_user_shares;foreignKey:TopicID;joinForeignKey:topic_id;References:ID;joinReferences:user_id" json:"shared_users"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TopicModel) TableName() string {
	return "topics"
}

// SharedGroupIDs flattens the preloaded group shares.
func (t *TopicModel) SharedGroupIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.SharedGroups))
	for _, g := range t.SharedGroups {
		ids = append(ids, g.GroupID)
	}
	return ids
}

// SharedUserIDs flattens the preloaded user shares.
func (t *TopicModel) SharedUserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.SharedUsers))
	for _, u := range t.SharedUsers {
		ids = append(ids, u.ID)
	}
	return ids
}

/* =========================
   Content block rows
========================= */

// TopicContentBlockModel is one ordered unit of topic content.
// BlockContent holds body text for paragraph blocks and a URL or
// embedded-data reference for image/video/document blocks.
type TopicContentBlockModel struct {
	BlockID      uuid.UUID `gorm:"column:block_id;type:uuid;default:gen_random_uuid();primaryKey" json:"block_id"`
	BlockTopicID uuid.UUID `gorm:"column:block_topic_id;type:uuid;not null;index" json:"block_topic_id"`
	BlockType    string    `gorm:"column:block_type;type:varchar(20);not null" json:"type"`
	BlockContent string    `gorm:"column:block_content;type:text" json:"content"`
	BlockTitle   string    `gorm:"column:block_title;size:255" json:"title"`
	BlockOrder   int       `gorm:"column:block_order;not null" json:"order"`
}

func (TopicContentBlockModel) TableName() string {
	return "topic_content_blocks"
}
