package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInvitationCodeFormat(t *testing.T) {
	code := GenerateInvitationCode(42)
	parts := strings.Split(code, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "42", parts[0])
	assert.Len(t, parts[2], 12)
}

func TestGenerateInvitationCodeUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		code := GenerateInvitationCode(1)
		assert.False(t, seen[code])
		seen[code] = true
	}
}

func TestInvitationLink(t *testing.T) {
	link := InvitationLink("42-18f2a-9ab3")
	assert.True(t, strings.HasSuffix(link, "/invitation/42-18f2a-9ab3"))
}

func TestEventSlug(t *testing.T) {
	s := EventSlug("Garden Birthday Party")
	assert.True(t, strings.HasPrefix(s, "garden-birthday-party-"))
	assert.NotEqual(t, s, EventSlug("Garden Birthday Party"))
}

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("ana@example.com", 7, "client")
	assert.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
}
