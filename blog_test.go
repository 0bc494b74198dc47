package main

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihumboldt/blog/config"
	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/logging"
)

func TestOpenStorageJSON(t *testing.T) {

	cfg, err := config.Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-data-dir", t.TempDir()})
	require.NoError(t, err)

	var ctx = context.Background()

	blog, store, closeStorage, err := openStorage(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer closeStorage()
	assert.NotNil(t, store)

	blog.Hasher = core.BcryptHasher{Cost: 4}
	require.NoError(t, blog.Init())

	seeded, err := blog.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestOpenStorageUnknown(t *testing.T) {
	_, _, _, err := openStorage(context.Background(), &config.Config{Backend: "redis"}, logging.Discard())
	assert.Error(t, err)
}

func TestRunBadFlags(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-backend", "redis"}))
	assert.Equal(t, 2, run([]string{"-log-level", "loud"}))
}
