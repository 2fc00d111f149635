package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	settingsModel "skillshots_backend/internals/features/settings/model"
	topicModel "skillshots_backend/internals/features/topics/model"
)

/* ==========================
   Authoring errors
========================== */

var (
	ErrValidation        = errors.New("validation error")
	ErrBlockOutOfRange   = fmt.Errorf("%w: block index out of range", ErrValidation)
	ErrEmptyTitle        = fmt.Errorf("%w: title must not be empty", ErrValidation)
	ErrUnknownBlockType  = fmt.Errorf("%w: unknown block type", ErrValidation)
	ErrUnknownBlockField = fmt.Errorf("%w: unknown block field", ErrValidation)
	ErrUnknownShareMode  = fmt.Errorf("%w: unknown share mode", ErrValidation)
	ErrBadCategory       = fmt.Errorf("%w: category is not in the allow-list", ErrValidation)
	ErrBadReadTime       = fmt.Errorf("%w: read time must be a positive number of minutes", ErrValidation)
	ErrNoEveryoneGroup   = fmt.Errorf("%w: the share-with-everyone group is not configured", ErrValidation)
)

/* ==========================
   Sharing modes

   Mutually exclusive at save time: whichever mode is active wins and
   the other channel is cleared. The resolver still ORs both channels
   for topics that carry both (e.g. migrated data).
========================== */

const (
	ShareModeAll         = "all"
	ShareModeDepartments = "departments"
	ShareModeUsers       = "users"
)

/* ==========================
   Topic draft
========================== */

// TopicDraft is the in-progress authoring state for a topic. Block
// operations mutate the draft only; nothing persists until SaveTopic.
type TopicDraft struct {
	TopicID   uuid.UUID // zero for a new topic
	Title     string
	Category  string
	AuthorID  uuid.UUID
	ReadTime  int
	ImageURL  string
	IsSOP     bool
	Blocks    []topicModel.TopicContentBlockModel
	ShareMode string
	GroupIDs  []uuid.UUID // selected for "departments" mode
	UserIDs   []uuid.UUID // selected for "users" mode
}

// AddBlock appends a new empty block of the given type with
// order = len(blocks)+1.
func (d *TopicDraft) AddBlock(blockType string) error {
	if !topicModel.IsValidBlockType(blockType) {
		return ErrUnknownBlockType
	}
	d.Blocks = append(d.Blocks, topicModel.TopicContentBlockModel{
		BlockType:  blockType,
		BlockOrder: len(d.Blocks) + 1,
	})
	return nil
}

// RemoveBlock deletes the block at index. Remaining blocks keep their
// relative order; renumbering happens on save, not here.
func (d *TopicDraft) RemoveBlock(index int) error {
	if index < 0 || index >= len(d.Blocks) {
		return ErrBlockOutOfRange
	}
	d.Blocks = append(d.Blocks[:index], d.Blocks[index+1:]...)
	return nil
}

// UpdateBlockField mutates one field of the block at index in place.
func (d *TopicDraft) UpdateBlockField(index int, field, value string) error {
	if index < 0 || index >= len(d.Blocks) {
		return ErrBlockOutOfRange
	}
	switch field {
	case "content":
		d.Blocks[index].BlockContent = value
	case "title":
		d.Blocks[index].BlockTitle = value
	case "type":
		if !topicModel.IsValidBlockType(value) {
			return ErrUnknownBlockType
		}
		d.Blocks[index].BlockType = value
	default:
		return ErrUnknownBlockField
	}
	return nil
}

// NormalizeBlockOrder reassigns order 1..N by current sequence position.
func (d *TopicDraft) NormalizeBlockOrder() {
	for i := range d.Blocks {
		d.Blocks[i].BlockOrder = i + 1
	}
}

/* ==========================
   Save-time resolution
========================== */

// ResolveSharing computes the final share sets from the active mode.
// "all" requires the everyone-group id pinned in settings. A save with
// an unpinned everyone group is rejected rather than stored with an
// empty share set, which would make the topic invisible to everyone.
func ResolveSharing(draft *TopicDraft, settings *settingsModel.AppSettingModel) (groupIDs, userIDs []uuid.UUID, err error) {
	switch draft.ShareMode {
	case ShareModeAll:
		if settings == nil || settings.EveryoneGroupID == nil {
			return nil, nil, ErrNoEveryoneGroup
		}
		return []uuid.UUID{*settings.EveryoneGroupID}, nil, nil
	case ShareModeDepartments:
		return draft.GroupIDs, nil, nil
	case ShareModeUsers:
		return nil, draft.UserIDs, nil
	default:
		return nil, nil, ErrUnknownShareMode
	}
}

// ValidateDraft checks everything that must hold before a save.
// Blocks with empty content are fine; they are skipped downstream.
func ValidateDraft(draft *TopicDraft, settings *settingsModel.AppSettingModel) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}
	if draft.ReadTime < 1 {
		return ErrBadReadTime
	}
	if settings != nil && len(settings.AppSettingCategories) > 0 && draft.Category != "" {
		if !settings.HasCategory(draft.Category) {
			return ErrBadCategory
		}
	}
	for i := range draft.Blocks {
		if !topicModel.IsValidBlockType(draft.Blocks[i].BlockType) {
			return ErrUnknownBlockType
		}
	}
	return nil
}

/* ==========================
   Authoring service
========================== */

type AuthoringService struct {
	DB *gorm.DB
}

func NewAuthoringService(db *gorm.DB) *AuthoringService {
	return &AuthoringService{DB: db}
}

// SaveTopic validates the draft and persists the whole topic in one
// transaction: topic row, full block replacement, and both share
// channels. Concurrent saves are last-writer-wins.
func (s *AuthoringService) SaveTopic(draft *TopicDraft, settings *settingsModel.AppSettingModel) (*topicModel.TopicModel, error) {
	if err := ValidateDraft(draft, settings); err != nil {
		return nil, err
	}
	groupIDs, userIDs, err := ResolveSharing(draft, settings)
	if err != nil {
		return nil, err
	}
	draft.NormalizeBlockOrder()

	topic := buildTopicRow(draft)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Save writes every column, so an edit must carry the original
		// creation timestamp or it gets reset to the zero time.
		var prev topicModel.TopicModel
		switch err := tx.Select("created_at").First(&prev, "topic_id = ?", topic.TopicID).Error; {
		case err == nil:
			carryCreatedAt(&topic, prev.CreatedAt)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Save(&topic).Error; err != nil {
			return err
		}

		// Full block replacement keeps order handling in one place.
		if err := tx.Where("block_topic_id = ?", topic.TopicID).
			Delete(&topicModel.TopicContentBlockModel{}).Error; err != nil {
			return err
		}
		for i := range draft.Blocks {
			draft.Blocks[i].BlockID = uuid.Nil
			draft.Blocks[i].BlockTopicID = topic.TopicID
		}
		if len(draft.Blocks) > 0 {
			if err := tx.Create(&draft.Blocks).Error; err != nil {
				return err
			}
		}

		if err := replaceShares(tx, topic.TopicID, "topic_group_shares", "group_id", groupIDs); err != nil {
			return err
		}
		return replaceShares(tx, topic.TopicID, "topic_user_shares", "user_id", userIDs)
	})
	if err != nil {
		return nil, err
	}

	topic.Blocks = draft.Blocks
	return &topic, nil
}

// buildTopicRow maps an already-validated draft onto a topic row.
// CreatedAt stays zero: autoCreateTime fills it on insert, and the
// update path carries the stored value forward.
func buildTopicRow(draft *TopicDraft) topicModel.TopicModel {
	topic := topicModel.TopicModel{
		TopicID:       draft.TopicID,
		TopicTitle:    strings.TrimSpace(draft.Title),
		TopicCategory: draft.Category,
		TopicAuthorID: draft.AuthorID,
		TopicReadTime: draft.ReadTime,
		TopicImageURL: draft.ImageURL,
		TopicIsSOP:    draft.IsSOP,
	}
	if topic.TopicCategory == "" {
		topic.TopicCategory = "General"
	}
	if topic.TopicID == uuid.Nil {
		topic.TopicID = uuid.New()
	}
	return topic
}

// carryCreatedAt keeps the stored creation timestamp when re-saving an
// existing topic. Visible-topic listings order by created_at, so a
// zeroed timestamp would push edited topics to the end.
func carryCreatedAt(topic *topicModel.TopicModel, existing time.Time) {
	if !existing.IsZero() {
		topic.CreatedAt = existing
	}
}

// DeleteTopic removes the topic; blocks and shares go with it.
func (s *AuthoringService) DeleteTopic(topicID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM topic_group_shares WHERE topic_id = ?", topicID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM topic_user_shares WHERE topic_id = ?", topicID).Error; err != nil {
			return err
		}
		if err := tx.Where("block_topic_id = ?", topicID).
			Delete(&topicModel.TopicContentBlockModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("topic_id = ?", topicID).Delete(&topicModel.TopicModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func replaceShares(tx *gorm.DB, topicID uuid.UUID, table, column string, ids []uuid.UUID) error {
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE topic_id = ?", table), topicID).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (topic_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING", table, column),
			topicID, id,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
