package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryIdNormalizesDate(t *testing.T) {
	padded := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	id := EntryId("user1", padded)

	assert.Equal(t, "user1-2024-01-05", id)
}

func TestEntryIdSameDayCollides(t *testing.T) {
	// ids are deliberately deterministic per (user, day) so re-uploads
	// upsert instead of duplicating
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, EntryId("user1", day), EntryId("user1", day))
	assert.NotEqual(t, EntryId("user1", day), EntryId("user2", day))
	assert.NotEqual(t, EntryId("user1", day), EntryId("user1", day.AddDate(0, 0, 1)))
}
