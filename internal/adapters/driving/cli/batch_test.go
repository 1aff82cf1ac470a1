package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchCmd_Use(t *testing.T) {
	assert.Equal(t, "batch <input-dir>", batchCmd.Use)
}

func TestBatchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBatchCmd_PrintsRunSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"batch", "labels"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Processing labels...")
	assert.Contains(t, buf.String(), "Processed 2 of 3 files (1 failed)")
	assert.Contains(t, buf.String(), "failed: bad.xml: unparsable document")
}

func TestBatchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := batchRunner
	batchRunner = nil
	defer func() {
		batchRunner = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch", "labels"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch service not configured")
}

func TestBatchCmd_RunError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	batchRunner = &mockBatchRunner{err: errMock}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch", "labels"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch failed")
}
