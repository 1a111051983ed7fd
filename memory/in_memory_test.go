package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()

	_, ok := store.Get("ep-1")
	assert.False(t, ok)

	require.NoError(t, store.Save(Record{
		EpisodeID: "ep-1",
		Agent:     "researcher",
		Question:  "What was NVIDIA revenue in 2024?",
		Answer:    "$60.9 billion.",
		Contexts:  []string{"NVIDIA reported $60.9 billion for fiscal 2024."},
		Scores:    map[string]float64{"answer_relevancy": 0.9},
	}))

	rec, ok := store.Get("ep-1")
	require.True(t, ok)
	assert.Equal(t, "researcher", rec.Agent)
	assert.False(t, rec.CreatedAt.IsZero())

	// Saving the same episode id overwrites.
	require.NoError(t, store.Save(Record{EpisodeID: "ep-1", Agent: "researcher", Answer: "revised"}))
	rec, _ = store.Get("ep-1")
	assert.Equal(t, "revised", rec.Answer)
	assert.Len(t, store.List(""), 1)
}

func TestInMemoryStoreListFiltersByAgent(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Save(Record{EpisodeID: "a", Agent: "researcher"}))
	require.NoError(t, store.Save(Record{EpisodeID: "b", Agent: "manager"}))
	require.NoError(t, store.Save(Record{EpisodeID: "c", Agent: "researcher"}))

	all := store.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].EpisodeID)

	research := store.List("researcher")
	require.Len(t, research, 2)
	assert.Equal(t, []string{"a", "c"}, []string{research[0].EpisodeID, research[1].EpisodeID})
}

func TestInMemoryStoreSearch(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Save(Record{EpisodeID: "a", Question: "NVIDIA revenue history"}))
	require.NoError(t, store.Save(Record{EpisodeID: "b", Answer: "The GDP doubles in about 25 years."}))
	require.NoError(t, store.Save(Record{EpisodeID: "c", Contexts: []string{"nvidia reported record revenue"}}))

	hits := store.Search("nvidia", 10)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].EpisodeID)
	assert.Equal(t, "c", hits[1].EpisodeID)

	assert.Len(t, store.Search("", 2), 2)
	assert.Empty(t, store.Search("quantum", 10))
}

func TestInMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("ep-%d", i)
			if err := store.Save(Record{EpisodeID: id, Agent: "worker"}); err != nil {
				t.Errorf("save error: %v", err)
			}
			store.Get(id)
			store.Search("", 5)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.List("worker"), 25)
}
