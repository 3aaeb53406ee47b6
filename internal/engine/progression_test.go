package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForNextLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 400},
		{3, 900},
		{5, 2500},
		{10, 10000},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, XPForNextLevel(c.level), "level %d", c.level)
	}
}

func TestCheckLevelUpBoundary(t *testing.T) {
	assert.False(t, CheckLevelUp(99, 1))
	assert.True(t, CheckLevelUp(100, 1))
	assert.False(t, CheckLevelUp(399, 2))
	assert.True(t, CheckLevelUp(400, 2))
}

func TestSkillXPForNextLevel(t *testing.T) {
	assert.Equal(t, 100, SkillXPForNextLevel(1))
	assert.Equal(t, 300, SkillXPForNextLevel(3))
	assert.True(t, CheckSkillLevelUp(100, 1))
	assert.False(t, CheckSkillLevelUp(99, 1))
}

func TestRankTitle(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "Novice"},
		{4, "Novice"},
		{5, "Apprentice"},
		{9, "Apprentice"},
		{10, "Journeyman"},
		{19, "Journeyman"},
		{20, "Adept"},
		{49, "Adept"},
		{50, "Master"},
		{79, "Master"},
		{80, "Grandmaster"},
		{200, "Grandmaster"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RankTitle(c.level), "level %d", c.level)
	}
}
