package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonytani37/votes-for-players/containers"
)

var testRedis *redis.Client

func TestMain(m *testing.M) {
	container := containers.NewRedisContainer()

	defer func() {
		if r := recover(); r != nil {
			container.Shutdown()
			fmt.Println("panic")
		}
	}()

	var err error
	testRedis, err = Dial(context.Background(), container.URL())
	if err != nil {
		fmt.Printf("error connecting to redis: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	testRedis.Close()
	container.Shutdown()
	os.Exit(code)
}

func TestCache(t *testing.T) {
	tests := []struct {
		name  string
		cache Cache
	}{
		{name: "memory", cache: NewMemory(DefaultSize, 0)},
		{name: "redis", cache: NewRedis(testRedis, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			c := tc.cache

			v, found, err := c.Get(ctx, "s1", RosterKey)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, v)

			require.NoError(t, c.Set(ctx, "s1", RosterKey, []byte(`[{"id":"TK07"}]`)))

			v, found, err = c.Get(ctx, "s1", RosterKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"id":"TK07"}]`, string(v))

			// Sessions do not see each other's values
			_, found, err = c.Get(ctx, "s2", RosterKey)
			require.NoError(t, err)
			assert.False(t, found)

			// Overwrite
			require.NoError(t, c.Set(ctx, "s1", RosterKey, []byte(`[]`)))
			v, _, err = c.Get(ctx, "s1", RosterKey)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(v))
		})
	}
}

func TestMemory_copiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(DefaultSize, 0)

	b := []byte("abc")
	require.NoError(t, c.Set(ctx, "s", "k", b))
	b[0] = 'x'

	v, _, _ := c.Get(ctx, "s", "k")
	assert.Equal(t, "abc", string(v))

	v[1] = 'y'
	v2, _, _ := c.Get(ctx, "s", "k")
	assert.Equal(t, "abc", string(v2))
}

func TestMemory_evictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(2, 0)

	require.NoError(t, c.Set(ctx, "s1", RosterKey, []byte("1")))
	require.NoError(t, c.Set(ctx, "s2", RosterKey, []byte("2")))
	// Touch s1 so s2 is the oldest
	_, found, _ := c.Get(ctx, "s1", RosterKey)
	require.True(t, found)
	require.NoError(t, c.Set(ctx, "s3", RosterKey, []byte("3")))

	_, found, _ = c.Get(ctx, "s2", RosterKey)
	assert.False(t, found)
	_, found, _ = c.Get(ctx, "s1", RosterKey)
	assert.True(t, found)
	_, found, _ = c.Get(ctx, "s3", RosterKey)
	assert.True(t, found)
}

func TestMemory_ttl(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(DefaultSize, 50*time.Millisecond)

	require.NoError(t, c.Set(ctx, "s", RosterKey, []byte("[]")))
	_, found, _ := c.Get(ctx, "s", RosterKey)
	require.True(t, found)

	assert.Eventually(t, func() bool {
		_, found, _ := c.Get(ctx, "s", RosterKey)
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestRedis_ttl(t *testing.T) {
	ctx := context.Background()
	c := NewRedis(testRedis, time.Minute)

	require.NoError(t, c.Set(ctx, "ttl-session", RosterKey, []byte("[]")))

	ttl, err := testRedis.TTL(ctx, "session:ttl-session:"+RosterKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestDial_badURL(t *testing.T) {
	_, err := Dial(context.Background(), "not a url")
	assert.Error(t, err)
}
