package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandSkipsConfig(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), version)
}

func TestRunCommandProducesSummary(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "descriptors emitted:")
}

func TestValidateConfigRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.toml"
	require.NoError(t, os.WriteFile(path, []byte("[generator]\nthread_count = 0\n"), 0o600))

	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", path, "validate-config"})

	err := cmd.Execute()
	assert.Error(t, err)
}
