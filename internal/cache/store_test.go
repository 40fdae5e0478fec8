package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore[*entity.Channel]()

	s.Put(100, &entity.Channel{ID: 100, Name: "general"})
	s.Put(100, &entity.Channel{ID: 100, Name: "renamed"})

	got, err := s.Get(100)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)

	err = s.Mutate(100, func(c *entity.Channel) {
		c.Topic = "hello"
	})
	require.NoError(t, err)

	got, err = s.Get(100)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)
	require.Equal(t, "hello", got.Topic)

	s.Remove(100)
	_, err = s.Get(100)
	require.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestStore_MutateMissingLeavesStoreUnchanged(t *testing.T) {
	s := NewStore[*entity.Channel]()
	s.Put(1, &entity.Channel{ID: 1, Name: "keep"})

	err := s.Mutate(2, func(c *entity.Channel) {
		c.Name = "never"
	})
	require.ErrorIs(t, err, errorx.ErrNotFound)
	require.Equal(t, 1, s.Len())

	got, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, "keep", got.Name)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	s := NewStore[*entity.Channel]()
	s.Remove(42)
	require.Equal(t, 0, s.Len())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore[*entity.Guild]()
	s.Put(10, &entity.Guild{ID: 10, Name: "guild", ChannelIDs: []entity.ID{1}})

	got, err := s.Get(10)
	require.NoError(t, err)

	// Mutating the returned snapshot must not leak into the store.
	got.Name = "hacked"
	got.ChannelIDs[0] = 999

	again, err := s.Get(10)
	require.NoError(t, err)
	require.Equal(t, "guild", again.Name)
	require.Equal(t, entity.ID(1), again.ChannelIDs[0])
}

func TestStore_ListIsSnapshot(t *testing.T) {
	s := NewStore[*entity.User]()
	s.Put(1, &entity.User{ID: 1, Username: "a"})
	s.Put(2, &entity.User{ID: 2, Username: "b"})

	list := s.List()
	require.Len(t, list, 2)

	s.Remove(1)
	require.Len(t, list, 2)
	require.Equal(t, 1, s.Len())
}

func TestStore_ConcurrentReadsDuringWrites(t *testing.T) {
	s := NewStore[*entity.Guild]()
	s.Put(1, &entity.Guild{ID: 1, Name: "one", ChannelIDs: []entity.ID{1, 2, 3}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = s.Mutate(1, func(g *entity.Guild) {
				g.ChannelIDs = append(g.ChannelIDs, entity.ID(i))
			})
		}
	}()

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				g, err := s.Get(1)
				if err == nil {
					require.GreaterOrEqual(t, len(g.ChannelIDs), 3)
				}
			}
		}()
	}

	<-done
	wg.Wait()
}
