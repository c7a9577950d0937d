package chat_test

import (
	"testing"

	"pharus/internal/chat"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTracker_IncrementBumpsCounter(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	sender := uuid.New()

	// Каждое входящее без открытого диалога даёт ровно +1
	for i := 1; i <= 3; i++ {
		assert.False(t, tracker.Focused(receiver, sender))
		tracker.Increment(receiver, sender)
		assert.Equal(t, i, tracker.Unread(receiver)[sender])
	}
	assert.Equal(t, 3, tracker.Total(receiver))
}

func TestTracker_TotalSumsAcrossSenders(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	a := uuid.New()
	b := uuid.New()

	tracker.Increment(receiver, a)
	tracker.Increment(receiver, a)
	tracker.Increment(receiver, b)

	counts := tracker.Unread(receiver)
	assert.Equal(t, 2, counts[a])
	assert.Equal(t, 1, counts[b])
	assert.Equal(t, 3, tracker.Total(receiver))
}

func TestTracker_OpenZeroesAndFocuses(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	sender := uuid.New()
	other := uuid.New()

	tracker.Increment(receiver, sender)
	tracker.Increment(receiver, other)

	tracker.Open(receiver, sender)
	assert.Equal(t, 0, tracker.Unread(receiver)[sender])
	// счётчик другого отправителя не трогаем
	assert.Equal(t, 1, tracker.Unread(receiver)[other])

	// сообщение от сфокусированного контакта приходит прочитанным
	assert.True(t, tracker.Focused(receiver, sender))

	// от остальных счётчик продолжает расти
	assert.False(t, tracker.Focused(receiver, other))
	tracker.Increment(receiver, other)
	assert.Equal(t, 2, tracker.Unread(receiver)[other])
}

func TestTracker_CloseDropsFocus(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	sender := uuid.New()

	tracker.Open(receiver, sender)
	tracker.Close(receiver)

	assert.False(t, tracker.Focused(receiver, sender))
}

func TestTracker_Zero(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	sender := uuid.New()

	tracker.Increment(receiver, sender)
	tracker.Zero(receiver, sender)

	assert.Equal(t, 0, tracker.Total(receiver))

	// Zero не открывает диалог
	assert.False(t, tracker.Focused(receiver, sender))
}

func TestTracker_Seed(t *testing.T) {
	tracker := chat.NewTracker()
	receiver := uuid.New()
	a := uuid.New()
	b := uuid.New()

	tracker.Increment(receiver, a)

	tracker.Seed(receiver, map[uuid.UUID]int{a: 5, b: 2})

	counts := tracker.Unread(receiver)
	assert.Equal(t, 5, counts[a])
	assert.Equal(t, 2, counts[b])
	assert.Equal(t, 7, tracker.Total(receiver))
}

func TestTracker_ReceiversIsolated(t *testing.T) {
	tracker := chat.NewTracker()
	alice := uuid.New()
	bob := uuid.New()
	sender := uuid.New()

	tracker.Increment(alice, sender)

	assert.Equal(t, 1, tracker.Total(alice))
	assert.Equal(t, 0, tracker.Total(bob))
}
