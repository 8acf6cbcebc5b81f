package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/kv"
)

var _ kv.Store = (*KV)(nil)

func TestKVGetMissing(t *testing.T) {
	s := NewKV(db.NewTestDB(t))

	v, ok, err := s.Get(context.Background(), "uploadedProjects")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestKVSetOverwrites(t *testing.T) {
	s := NewKV(db.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "deletedStaticProjects", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "deletedStaticProjects", []byte(`[1,2]`)))

	v, ok, err := s.Get(ctx, "deletedStaticProjects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(v))
}

func TestKVDelete(t *testing.T) {
	s := NewKV(db.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
