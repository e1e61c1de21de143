package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStages(t *testing.T) {
	stages := ValidStages()
	assert.Len(t, stages, 6)
	assert.Equal(t, StageApplied, stages[0])
	assert.Contains(t, stages, StageOffer)
}

func TestIsTerminalStage(t *testing.T) {
	assert.True(t, IsTerminalStage(StageRejected))
	assert.True(t, IsTerminalStage(StageAccepted))
	assert.False(t, IsTerminalStage(StageApplied))
	assert.False(t, IsTerminalStage(StageInterview))
	assert.False(t, IsTerminalStage("unknown"))
}

func TestReminderIsOverdue(t *testing.T) {
	now := time.Now()

	past := Reminder{DueAt: now.Add(-time.Hour)}
	assert.True(t, past.IsOverdue(now))

	past.Completed = true
	assert.False(t, past.IsOverdue(now))

	future := Reminder{DueAt: now.Add(time.Hour)}
	assert.False(t, future.IsOverdue(now))
}
