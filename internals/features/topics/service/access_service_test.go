package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	groupModel "skillshots_backend/internals/features/groups/model"
	topicModel "skillshots_backend/internals/features/topics/model"
	userModel "skillshots_backend/internals/features/users/user/model"
)

func userInGroups(groupIDs ...uuid.UUID) *userModel.UserModel {
	u := &userModel.UserModel{ID: uuid.New()}
	for _, id := range groupIDs {
		u.Groups = append(u.Groups, groupModel.GroupModel{GroupID: id})
	}
	return u
}

func topicSharedWith(groupIDs []uuid.UUID, userIDs []uuid.UUID) topicModel.TopicModel {
	t := topicModel.TopicModel{TopicID: uuid.New()}
	for _, id := range groupIDs {
		t.SharedGroups = append(t.SharedGroups, groupModel.GroupModel{GroupID: id})
	}
	for _, id := range userIDs {
		t.SharedUsers = append(t.SharedUsers, userModel.UserModel{ID: id})
	}
	return t
}

func TestVisibilityByGroupIntersection(t *testing.T) {
	sales := uuid.New()
	engineering := uuid.New()
	hr := uuid.New()

	user := userInGroups(sales, engineering)

	shared := topicSharedWith([]uuid.UUID{engineering}, nil)
	assert.True(t, IsVisible(user, &shared))

	notShared := topicSharedWith([]uuid.UUID{hr}, nil)
	assert.False(t, IsVisible(user, &notShared))
}

func TestVisibilityByDirectGrant(t *testing.T) {
	user := userInGroups() // no group memberships at all

	granted := topicSharedWith(nil, []uuid.UUID{user.ID})
	assert.True(t, IsVisible(user, &granted))

	someoneElse := topicSharedWith(nil, []uuid.UUID{uuid.New()})
	assert.False(t, IsVisible(user, &someoneElse))
}

// The two channels are independent: either one alone grants access.
func TestVisibilityChannelsAreORed(t *testing.T) {
	sales := uuid.New()
	user := userInGroups(sales)

	groupOnly := topicSharedWith([]uuid.UUID{sales}, []uuid.UUID{uuid.New()})
	assert.True(t, IsVisible(user, &groupOnly))

	grantOnly := topicSharedWith([]uuid.UUID{uuid.New()}, []uuid.UUID{user.ID})
	assert.True(t, IsVisible(user, &grantOnly))
}

// Writing a topic grants nothing; the author sees it only through the
// same sharing channels as everyone else.
func TestAuthorshipGrantsNoVisibility(t *testing.T) {
	author := userInGroups()
	topic := topicSharedWith([]uuid.UUID{uuid.New()}, nil)
	topic.TopicAuthorID = author.ID

	assert.False(t, IsVisible(author, &topic))
}

func TestVisibleTopicsFilters(t *testing.T) {
	sales := uuid.New()
	user := userInGroups(sales)

	visible := topicSharedWith([]uuid.UUID{sales}, nil)
	hidden := topicSharedWith([]uuid.UUID{uuid.New()}, nil)
	unshared := topicSharedWith(nil, nil)

	got := VisibleTopics(user, []topicModel.TopicModel{visible, hidden, unshared})
	assert.Len(t, got, 1)
	assert.Equal(t, visible.TopicID, got[0].TopicID)
}

func TestVisibleTopicsEmptyResultIsValid(t *testing.T) {
	user := userInGroups(uuid.New())
	got := VisibleTopics(user, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
