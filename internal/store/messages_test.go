package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/model"
)

func TestCreateAndGetMessage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	m, err := CreateMessage(ctx, database, model.Message{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "Nice portfolio.",
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, "Ada", m.Name)
	assert.False(t, m.CreatedAt.IsZero())

	missing, err := GetMessage(ctx, database, m.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListMessagesNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, subject := range []string{"first", "second", "third"} {
		_, err := CreateMessage(ctx, database, model.Message{
			Name: "n", Email: "n@example.com", Subject: subject, Body: "b",
		})
		require.NoError(t, err)
	}

	messages, err := ListMessages(ctx, database, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "third", messages[0].Subject)
	assert.Equal(t, "second", messages[1].Subject)
}
