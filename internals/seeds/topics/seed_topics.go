package topics

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	groupModel "skillshots_backend/internals/features/groups/model"
	topicModel "skillshots_backend/internals/features/topics/model"
)

type sampleTopic struct {
	Title    string
	Category string
	ReadTime int
	IsSOP    bool
	Blocks   []topicModel.TopicContentBlockModel
}

var sampleTopics = []sampleTopic{
	{
		Title:    "Welcome to SkillShots",
		Category: "Onboarding",
		ReadTime: 3,
		Blocks: []topicModel.TopicContentBlockModel{
			{BlockType: topicModel.BlockParagraph, BlockOrder: 1, BlockContent: "SkillShots delivers training in short, focused topics. Each topic takes just a few minutes to read, ends with a quick quiz, and earns you points on the company leaderboard."},
			{BlockType: topicModel.BlockParagraph, BlockOrder: 2, BlockContent: "Your dashboard shows only the topics shared with you or your departments. Complete the quiz at the end of a topic to mark it done and collect your points."},
		},
	},
	{
		Title:    "Workstation Security Basics",
		Category: "Compliance",
		ReadTime: 4,
		IsSOP:    true,
		Blocks: []topicModel.TopicContentBlockModel{
			{BlockType: topicModel.BlockParagraph, BlockOrder: 1, BlockContent: "Lock your screen whenever you step away from your desk, even for a minute. On most systems this is a single keystroke."},
			{BlockType: topicModel.BlockParagraph, BlockOrder: 2, BlockContent: "Never plug in USB drives of unknown origin, and report any suspicious email to the security team instead of clicking its links."},
		},
	},
}

// SeedSampleTopics fills an empty catalog with starter content shared
// with the everyone group, so a fresh install has something on the
// dashboard. It is a no-op once any topic exists.
func SeedSampleTopics(db *gorm.DB, authorID uuid.UUID, everyoneGroupID *uuid.UUID) error {
	var count int64
	if err := db.Model(&topicModel.TopicModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if everyoneGroupID == nil {
		log.Println("⚠️  Skipping sample topics: everyone group is not pinned")
		return nil
	}

	for _, s := range sampleTopics {
		topic := topicModel.TopicModel{
			TopicTitle:    s.Title,
			TopicCategory: s.Category,
			TopicAuthorID: authorID,
			TopicReadTime: s.ReadTime,
			TopicIsSOP:    s.IsSOP,
			Blocks:        s.Blocks,
			SharedGroups:  []groupModel.GroupModel{{GroupID: *everyoneGroupID}},
		}
		if err := db.Create(&topic).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded topic %q", s.Title)
	}
	return nil
}
