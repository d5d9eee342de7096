package service_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileID(t *testing.T, database *sqlx.DB, userID string) string {
	t.Helper()
	profile, err := repository.NewProfileRepository(database).ByUserID(userID)
	require.NoError(t, err)
	return profile.ID
}

func TestSendMessageRequiresContent(t *testing.T) {
	database := newTestDB(t)
	kira := profileID(t, database, signupUser(t, database, "kira").ID)
	niko := profileID(t, database, signupUser(t, database, "niko").ID)
	messages := service.NewMessageService(repository.NewMessageRepository(database))

	_, err := messages.Send(kira, niko, "   ")
	require.ErrorIs(t, err, service.ErrEmptyMessage)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(1) FROM messages`))
	assert.Zero(t, count)
}

func TestConversationOrdersAndMarksRead(t *testing.T) {
	database := newTestDB(t)
	kira := profileID(t, database, signupUser(t, database, "kira").ID)
	niko := profileID(t, database, signupUser(t, database, "niko").ID)
	messages := service.NewMessageService(repository.NewMessageRepository(database))

	_, err := messages.Send(kira, niko, "hi, is Bingo due for shots?")
	require.NoError(t, err)
	_, err = messages.Send(niko, kira, "yes, book any weekday")
	require.NoError(t, err)
	_, err = messages.Send(kira, niko, "thanks!")
	require.NoError(t, err)

	unread, err := messages.UnreadCount(niko)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	// Reading the conversation as niko clears kira's messages to niko.
	conversation, err := messages.Conversation(niko, kira)
	require.NoError(t, err)
	require.Len(t, conversation, 3)
	assert.Equal(t, "hi, is Bingo due for shots?", conversation[0].Content)
	assert.Equal(t, "thanks!", conversation[2].Content)

	unread, err = messages.UnreadCount(niko)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Niko's own message to kira is still unread on kira's side.
	unread, err = messages.UnreadCount(kira)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestConversationIsScopedToTheTwoProfiles(t *testing.T) {
	database := newTestDB(t)
	kira := profileID(t, database, signupUser(t, database, "kira").ID)
	niko := profileID(t, database, signupUser(t, database, "niko").ID)
	mona := profileID(t, database, signupUser(t, database, "mona").ID)
	messages := service.NewMessageService(repository.NewMessageRepository(database))

	_, err := messages.Send(kira, niko, "for niko")
	require.NoError(t, err)
	_, err = messages.Send(kira, mona, "for mona")
	require.NoError(t, err)

	conversation, err := messages.Conversation(niko, kira)
	require.NoError(t, err)
	require.Len(t, conversation, 1)
	assert.Equal(t, "for niko", conversation[0].Content)
}
