package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleLearner))
	assert.True(t, IsValidRole(RoleCreator))

	assert.False(t, IsValidRole("Admin"))
	assert.False(t, IsValidRole("creator")) // roles are case-sensitive
	assert.False(t, IsValidRole(""))
}

func TestCreatorOnlyContainsOnlyCreator(t *testing.T) {
	assert.Equal(t, []string{RoleCreator}, CreatorOnly)
}
