package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileTypeIsValid(t *testing.T) {
	assert.True(t, ProfileTypeStudent.IsValid())
	assert.True(t, ProfileTypeMentor.IsValid())
	assert.False(t, ProfileType("teacher").IsValid())
	assert.False(t, ProfileType("").IsValid())
}

func TestProjectCategories(t *testing.T) {
	assert.True(t, IsValidProjectCategory("startup"))
	assert.True(t, IsValidProjectCategory("junior_enterprise"))
	assert.True(t, IsValidProjectCategory("academic"))
	assert.True(t, IsValidProjectCategory("social_project"))
	assert.False(t, IsValidProjectCategory("ngo"))
	assert.False(t, IsValidProjectCategory(""))

	assert.Equal(t, "empresa júnior", ReadableProjectCategory("junior_enterprise"))
	assert.Equal(t, "projeto social", ReadableProjectCategory("social_project"))
	// Unknown values pass through unchanged
	assert.Equal(t, "ngo", ReadableProjectCategory("ngo"))
}

func TestDiscussionCategories(t *testing.T) {
	assert.True(t, IsValidDiscussionCategory("doubt"))
	assert.True(t, IsValidDiscussionCategory("suggestion"))
	assert.True(t, IsValidDiscussionCategory("feedback"))
	assert.False(t, IsValidDiscussionCategory("question"))

	assert.Equal(t, "dúvida", ReadableDiscussionCategory("doubt"))
	assert.Equal(t, "sugestão", ReadableDiscussionCategory("suggestion"))
}
