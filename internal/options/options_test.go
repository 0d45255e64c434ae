package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	limit int
	name  string
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg,
		NoError(func(c *testConfig) { c.limit = 10 }),
		NoError(func(c *testConfig) { c.name = "steel" }),
	)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.limit)
	require.Equal(t, "steel", cfg.name)
}

func TestApplyStopsOnError(t *testing.T) {
	sentinel := errors.New("bad option")

	cfg := &testConfig{}
	err := Apply(cfg,
		NoError(func(c *testConfig) { c.limit = 1 }),
		New(func(c *testConfig) error { return sentinel }),
		NoError(func(c *testConfig) { c.limit = 2 }),
	)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, cfg.limit, "options after the failing one must not run")
}

func TestApplySkipsNil(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg, nil, NoError(func(c *testConfig) { c.limit = 5 }))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.limit)
}
