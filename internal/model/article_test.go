package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_ForwardOnly(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusPublished))
	assert.True(t, CanTransition(StatusDraft, StatusArchived))
	assert.True(t, CanTransition(StatusPublished, StatusArchived))

	assert.False(t, CanTransition(StatusPublished, StatusDraft))
	assert.False(t, CanTransition(StatusArchived, StatusPublished))
	assert.False(t, CanTransition(StatusDraft, StatusDraft))
	assert.False(t, CanTransition("inconnu", StatusPublished))
}

func TestSocialShares_Shared(t *testing.T) {
	shares := SocialShares{Twitter: true}
	assert.True(t, shares.Shared(PlatformTwitter))
	assert.False(t, shares.Shared(PlatformFacebook))
	assert.False(t, shares.Shared("myspace"))
	assert.False(t, shares.FullyShared())

	assert.True(t, SocialShares{Facebook: true, Twitter: true, LinkedIn: true}.FullyShared())
}
