package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSection15_HasNineMandatesWithStableShortCodes(t *testing.T) {
	assert.Len(t, Section15, 9)
	for i, label := range Section15 {
		prefix := "15(" // each label opens with its short code
		assert.True(t, strings.HasPrefix(label, prefix), "label %d: %s", i, label)
	}
	assert.True(t, strings.HasPrefix(Section15[3], "15(4)"))
}

func TestMembershipHelpers(t *testing.T) {
	assert.True(t, IsActivityType("Meeting"))
	assert.True(t, IsActivityType("Other"))
	assert.False(t, IsActivityType("meeting")) // exact match only
	assert.False(t, IsActivityType(""))

	assert.True(t, IsRegion("Bangkok & Vicinity"))
	assert.False(t, IsRegion("Mars"))

	assert.True(t, IsSection15("15(5) Coordination (ประสานงาน/กู้ชีพ)"))
	assert.False(t, IsSection15("15(5)"))
}

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, ActivityTypes, 9)
	assert.Len(t, Regions, 7)
}
