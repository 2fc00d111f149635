package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	topicModel "skillshots_backend/internals/features/topics/model"
	userModel "skillshots_backend/internals/features/users/user/model"
)

/* ==========================
   Access resolution

   A topic is visible when the user shares a group with it OR is
   granted directly. The channels are independent (OR, never AND),
   and authorship grants nothing by itself.
========================== */

// IsVisible reports whether user may see topic. Pure; expects group
// memberships and shares to be populated on the models.
func IsVisible(user *userModel.UserModel, topic *topicModel.TopicModel) bool {
	memberOf := make(map[uuid.UUID]struct{}, len(user.Groups))
	for _, id := range user.GroupIDs() {
		memberOf[id] = struct{}{}
	}
	for _, id := range topic.SharedGroupIDs() {
		if _, ok := memberOf[id]; ok {
			return true
		}
	}
	for _, id := range topic.SharedUserIDs() {
		if id == user.ID {
			return true
		}
	}
	return false
}

// VisibleTopics filters allTopics down to what user may see.
// An empty result is a valid outcome, not an error.
func VisibleTopics(user *userModel.UserModel, allTopics []topicModel.TopicModel) []topicModel.TopicModel {
	visible := make([]topicModel.TopicModel, 0, len(allTopics))
	for i := range allTopics {
		if IsVisible(user, &allTopics[i]) {
			visible = append(visible, allTopics[i])
		}
	}
	return visible
}

// QueryVisibleTopics is the SQL form of the same rule, used by the
// dashboard so visibility filtering happens in the database.
func QueryVisibleTopics(db *gorm.DB, userID uuid.UUID) ([]topicModel.TopicModel, error) {
	var topics []topicModel.TopicModel
	err := db.
		Where(`EXISTS (
			SELECT 1 FROM topic_group_shares tgs
			JOIN user_groups ug ON ug.group_id = tgs.group_id
			WHERE tgs.topic_id = topics.topic_id AND ug.user_id = ?
		) OR EXISTS (
			SELECT 1 FROM topic_user_shares tus
			WHERE tus.topic_id = topics.topic_id AND tus.user_id = ?
		)`, userID, userID).
		Preload("Blocks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("block_order ASC")
		}).
		Preload("SharedGroups").
		Order("created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}
