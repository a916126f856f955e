package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactArgsPrintsUsageOnBadInvocation(t *testing.T) {
	stderr := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "imgbrowse DIRECTORY"}
	cmd.SetErr(stderr)

	err := exactArgs(1)(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "imgbrowse DIRECTORY")
}

func TestExactArgsAcceptsDirectory(t *testing.T) {
	stderr := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "imgbrowse DIRECTORY"}
	cmd.SetErr(stderr)

	require.NoError(t, exactArgs(1)(cmd, []string{"pics"}))
	assert.Empty(t, stderr.String())
}
