package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestActivatePower(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()

	power, err := e.ActivatePower(state, "pwr_hyperfocus")
	require.NoError(t, err)
	assert.Equal(t, "Hyperfocus", power.Name)
	assert.Equal(t, 50, state.User.Credits)

	require.Len(t, state.User.ActiveBuffs, 1)
	buff := state.User.ActiveBuffs[0]
	assert.Equal(t, testNow.UnixMilli(), buff.StartTime)
	assert.Equal(t, testNow.UnixMilli()+60*60000, buff.EndTime)
}

func TestActivatePowerInsufficientCredits(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.User.Credits = 10

	_, err := e.ActivatePower(state, "pwr_berserker")
	assert.Error(t, err)
	assert.Equal(t, 10, state.User.Credits)
	assert.Empty(t, state.User.ActiveBuffs)
}

func TestActivatePowerUnknown(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()

	_, err := e.ActivatePower(state, "pwr_unknown")
	assert.Error(t, err)
}

func TestActiveBuffsFiltersExpired(t *testing.T) {
	e := newTestEngine(testNow)
	now := testNow.UnixMilli()
	user := &models.UserStats{ActiveBuffs: []models.ActiveBuff{
		{PowerID: "pwr_hyperfocus", EndTime: now - 1},
		{PowerID: "pwr_berserker", EndTime: now + 1000},
	}}

	active := e.ActiveBuffs(user)
	require.Len(t, active, 1)
	assert.Equal(t, "pwr_berserker", active[0].PowerID)
}

func TestPruneBuffs(t *testing.T) {
	e := newTestEngine(testNow)
	now := testNow.UnixMilli()
	user := &models.UserStats{ActiveBuffs: []models.ActiveBuff{
		{PowerID: "pwr_hyperfocus", EndTime: now - 1},
	}}

	e.PruneBuffs(user)
	assert.NotNil(t, user.ActiveBuffs)
	assert.Empty(t, user.ActiveBuffs)
}

func TestFindBuffNoStacking(t *testing.T) {
	buffs := []models.ActiveBuff{
		{PowerID: "pwr_berserker"},
		{PowerID: "pwr_hyperfocus"},
		{PowerID: "pwr_hyperfocus"},
	}

	p, ok := findBuffOfType(buffs, models.PowerXPBoost)
	require.True(t, ok)
	assert.Equal(t, "pwr_hyperfocus", p.ID)

	_, ok = findBuffOfType([]models.ActiveBuff{}, models.PowerXPBoost)
	assert.False(t, ok)
}
