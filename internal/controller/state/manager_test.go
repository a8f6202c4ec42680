package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateLifecycle(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(100))

	sm.SetState(100, StateLoginUsername)
	assert.Equal(t, StateLoginUsername, sm.GetState(100))

	// Состояния чатов независимы
	assert.Equal(t, StateNone, sm.GetState(200))

	sm.ClearState(100)
	assert.Equal(t, StateNone, sm.GetState(100))
}

func TestDataSurvivesStateChange(t *testing.T) {
	sm := NewManager()

	sm.SetData(100, "login_username", "anna")
	sm.SetState(100, StateLoginPassword)

	value, ok := sm.GetData(100, "login_username")
	assert.True(t, ok)
	assert.Equal(t, "anna", value)

	_, ok = sm.GetData(100, "missing")
	assert.False(t, ok)
}

func TestSetStateNoneClears(t *testing.T) {
	sm := NewManager()

	sm.SetData(100, "key", 42)
	sm.SetState(100, StateNone)

	_, ok := sm.GetData(100, "key")
	assert.False(t, ok)
}

func TestGetAllDataReturnsCopy(t *testing.T) {
	sm := NewManager()

	sm.SetData(100, "a", 1)
	all := sm.GetAllData(100)
	all["b"] = 2

	_, ok := sm.GetData(100, "b")
	assert.False(t, ok)

	assert.Nil(t, sm.GetAllData(999))
}
