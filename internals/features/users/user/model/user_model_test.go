package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	groupModel "skillshots_backend/internals/features/groups/model"
)

func TestNormalizeLowersEmail(t *testing.T) {
	u := UserModel{FullName: "Sam Chen", Email: "  Sam.Chen@Example.COM "}
	u.Normalize()
	assert.Equal(t, "sam.chen@example.com", u.Email)
	assert.Equal(t, "Learner", u.Role)
}

func TestNormalizeKeepsExplicitRole(t *testing.T) {
	u := UserModel{Role: "Creator"}
	u.Normalize()
	assert.Equal(t, "Creator", u.Role)
}

func TestValidate(t *testing.T) {
	valid := UserModel{FullName: "Sam Chen", Email: "sam@example.com", Role: "Learner"}
	assert.NoError(t, valid.Validate())

	badEmail := UserModel{FullName: "Sam Chen", Email: "not-an-email", Role: "Learner"}
	assert.Error(t, badEmail.Validate())

	badRole := UserModel{FullName: "Sam Chen", Email: "sam@example.com", Role: "Admin"}
	assert.Error(t, badRole.Validate())

	shortName := UserModel{FullName: "S", Email: "sam@example.com", Role: "Learner"}
	assert.Error(t, shortName.Validate())
}

func TestGroupIDs(t *testing.T) {
	u := UserModel{}
	assert.Empty(t, u.GroupIDs())

	g1 := groupModel.GroupModel{GroupName: "Sales"}
	g2 := groupModel.GroupModel{GroupName: "Engineering"}
	u.Groups = []groupModel.GroupModel{g1, g2}
	assert.Len(t, u.GroupIDs(), 2)
}
