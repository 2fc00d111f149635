package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	topicModel "skillshots_backend/internals/features/topics/model"
	"skillshots_backend/internals/features/topics/service"
)

var Validate = validator.New()

type ContentBlockRequest struct {
	Type    string `json:"type" validate:"required,oneof=paragraph image video document"`
	Content string `json:"content"`
	Title   string `json:"title"`
}

// SaveTopicRequest is the full-topic save payload. The three share
// modes are mutually exclusive; whichever is sent wins.
type SaveTopicRequest struct {
	Title     string                `json:"title" validate:"required"`
	Category  string                `json:"category"`
	ReadTime  int                   `json:"read_time" validate:"required,min=1"`
	ImageURL  string                `json:"image_url"`
	IsSOP     bool                  `json:"is_sop"`
	ShareMode string                `json:"share_mode" validate:"required,oneof=all departments users"`
	GroupIDs  []uuid.UUID           `json:"group_ids"`
	UserIDs   []uuid.UUID           `json:"user_ids"`
	Blocks    []ContentBlockRequest `json:"content"`
}

// ToDraft converts the request into an authoring draft. Block order is
// positional in the payload; the save pass renumbers 1..N.
func (r *SaveTopicRequest) ToDraft(topicID, authorID uuid.UUID) *service.TopicDraft {
	blocks := make([]topicModel.TopicContentBlockModel, 0, len(r.Blocks))
	for i, b := range r.Blocks {
		blocks = append(blocks, topicModel.TopicContentBlockModel{
			BlockType:    b.Type,
			BlockContent: b.Content,
			BlockTitle:   b.Title,
			BlockOrder:   i + 1,
		})
	}
	return &service.TopicDraft{
		TopicID:   topicID,
		Title:     r.Title,
		Category:  r.Category,
		AuthorID:  authorID,
		ReadTime:  r.ReadTime,
		ImageURL:  r.ImageURL,
		IsSOP:     r.IsSOP,
		Blocks:    blocks,
		ShareMode: r.ShareMode,
		GroupIDs:  r.GroupIDs,
		UserIDs:   r.UserIDs,
	}
}
