package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusArchived},
		{StatusArchived, StatusApproved},
	}
	for _, tr := range allowed {
		assert.True(t, ValidTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{StatusRejected, StatusApproved},
		{StatusRejected, StatusArchived},
		{StatusApproved, StatusPending},
		{StatusApproved, StatusRejected},
		{StatusArchived, StatusRejected},
		{StatusArchived, StatusPending},
		{StatusPending, StatusArchived},
		{"bogus", StatusApproved},
	}
	for _, tr := range denied {
		assert.False(t, ValidTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestSplitBlacklist(t *testing.T) {
	assert.Equal(t,
		[]string{"spoiler", "bad phrase", "rude"},
		SplitBlacklist("Spoiler, bad phrase\nRUDE,,\n"))
	assert.Nil(t, SplitBlacklist(""))
	assert.Nil(t, SplitBlacklist(" ,\n, "))
}

func TestBlacklistMatch(t *testing.T) {
	list := "spoiler, bad phrase"

	assert.True(t, BlacklistMatch(list, "no SPOILERS please"))
	assert.True(t, BlacklistMatch(list, "fine", "such a bad phrase here"))
	assert.False(t, BlacklistMatch(list, "a perfectly nice caption"))
	assert.False(t, BlacklistMatch("", "anything at all"))
}
