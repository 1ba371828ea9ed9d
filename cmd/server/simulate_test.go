package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSimulateDistribution(t *testing.T) {
	out, err := runCmd(t, "simulate", "--type", "beginner", "--trials", "2000", "--seed", "3", "--until", "")
	require.NoError(t, err)
	assert.Contains(t, out, "beginner: 2000 draws")
	assert.Contains(t, out, "common")
	assert.Contains(t, out, "유니크")
}

func TestSimulateUntil(t *testing.T) {
	out, err := runCmd(t, "simulate", "--type", "luxury", "--trials", "200", "--seed", "3", "--until", "unique")
	require.NoError(t, err)
	assert.Contains(t, out, "luxury draws until unique or better")
	assert.Contains(t, out, "mean")
}

func TestSimulateRejectsBadInput(t *testing.T) {
	_, err := runCmd(t, "simulate", "--type", "mythic", "--trials", "10", "--until", "")
	assert.Error(t, err)
	_, err = runCmd(t, "simulate", "--type", "normal", "--until", "shiny")
	assert.Error(t, err)
}
