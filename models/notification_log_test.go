package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLogBeforeCreateAssignsID(t *testing.T) {
	var n NotificationLog
	require.NoError(t, n.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, n.ID)
}

func TestNotificationLogBeforeCreateKeepsPresetID(t *testing.T) {
	id := uuid.New()
	n := NotificationLog{ID: id}

	require.NoError(t, n.BeforeCreate(nil))
	assert.Equal(t, id, n.ID)
}
