package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func TestInflightGuard_Acquire(t *testing.T) {
	rdb := new(MockClient)
	rdb.On("SetNX", mock.Anything, "feedback:delete-inflight:a", mock.Anything, time.Minute).
		Return(redis.NewBoolResult(true, nil)).Once()
	rdb.On("SetNX", mock.Anything, "feedback:delete-inflight:a", mock.Anything, time.Minute).
		Return(redis.NewBoolResult(false, nil)).Once()

	g := NewInflightGuard(rdb, time.Minute)
	ok, err := g.Acquire(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Acquire(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInflightGuard_AcquireError(t *testing.T) {
	rdb := new(MockClient)
	rdb.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(redis.NewBoolResult(false, errors.New("connection refused")))

	ok, err := NewInflightGuard(rdb, time.Minute).Acquire(context.Background(), "a")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestInflightGuard_Release(t *testing.T) {
	rdb := new(MockClient)
	rdb.On("Del", mock.Anything, []string{"feedback:delete-inflight:a"}).Return(redis.NewIntResult(1, nil))

	require.NoError(t, NewInflightGuard(rdb, time.Minute).Release(context.Background(), "a"))
	rdb.AssertExpectations(t)
}
