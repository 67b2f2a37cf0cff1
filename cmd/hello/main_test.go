package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runMainEnv = "HELLO_TEST_RUN_MAIN"

// TestMain runs main instead of the tests when the binary is re-executed by runProcess.
func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) == "true" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// runProcess re-executes the test binary as the hello command and returns its stdout and exit code.
func runProcess(t *testing.T, env ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(append(os.Environ(), runMainEnv+"=true"), env...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode()
	}
	require.NoError(t, err)
	return stdout.String(), 0
}

// captureStdout runs f with os.Stdout redirected to a pipe and returns what was written.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = writer
	defer func() { os.Stdout = original }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		done <- buf.String()
	}()

	f()
	require.NoError(t, writer.Close())
	return <-done
}

func TestRun(t *testing.T) {
	t.Run("it should print the greeting once on the standard output", func(t *testing.T) {
		// GIVEN
		var logs bytes.Buffer
		var err error

		// WHEN
		stdout := captureStdout(t, func() {
			err = run(context.Background(), &logs)
		})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!\n", stdout)
		assert.Contains(t, logs.String(), "bye.")
	})

	t.Run("it should print the same line on every run", func(t *testing.T) {
		// WHEN
		first := captureStdout(t, func() {
			require.NoError(t, run(context.Background(), io.Discard))
		})
		second := captureStdout(t, func() {
			require.NoError(t, run(context.Background(), io.Discard))
		})

		// THEN
		assert.Equal(t, "Hello, World!\n", first)
		assert.Equal(t, first, second)
	})

	t.Run("it should count greetings when metrics are enabled", func(t *testing.T) {
		// GIVEN
		t.Setenv("HELLO_METRICS_ENABLED", "true")
		var logs bytes.Buffer
		var err error

		// WHEN
		stdout := captureStdout(t, func() {
			err = run(context.Background(), &logs)
		})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!\n", stdout)
		assert.Contains(t, logs.String(), "hello_greetings_total")
	})

	t.Run("it should fail on an invalid log level", func(t *testing.T) {
		// GIVEN
		t.Setenv("HELLO_LOG_LEVEL", "chatty")
		var logs bytes.Buffer
		var err error

		// WHEN
		stdout := captureStdout(t, func() {
			err = run(context.Background(), &logs)
		})

		// THEN
		require.Error(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, logs.String(), "invalid log level")
	})

	t.Run("it should not greet when the context is already cancelled", func(t *testing.T) {
		// GIVEN
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var err error

		// WHEN
		stdout := captureStdout(t, func() {
			err = run(ctx, io.Discard)
		})

		// THEN
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, stdout)
	})

	t.Run("it should fail when the standard output is closed", func(t *testing.T) {
		// GIVEN
		reader, writer, err := os.Pipe()
		require.NoError(t, err)
		require.NoError(t, reader.Close())
		require.NoError(t, writer.Close())
		original := os.Stdout
		os.Stdout = writer
		defer func() { os.Stdout = original }()
		var logs bytes.Buffer

		// WHEN
		err = run(context.Background(), &logs)

		// THEN
		require.ErrorIs(t, err, os.ErrClosed)
		assert.Contains(t, err.Error(), "failed to greet")
		assert.Contains(t, logs.String(), "failed to write greeting")
		assert.NotContains(t, logs.String(), "bye.")
	})

	t.Run("it should not describe the components below the trace level", func(t *testing.T) {
		// GIVEN
		t.Setenv("HELLO_LOG_LEVEL", "debug")
		var logs bytes.Buffer

		// WHEN
		stdout := captureStdout(t, func() {
			require.NoError(t, run(context.Background(), &logs))
		})

		// THEN
		assert.Equal(t, "Hello, World!\n", stdout)
		assert.NotContains(t, logs.String(), "components before running")
	})
}

func TestMainProcess(t *testing.T) {
	t.Run("it should greet and exit with 0", func(t *testing.T) {
		// WHEN
		stdout, code := runProcess(t)

		// THEN
		assert.Equal(t, 0, code)
		assert.Equal(t, "Hello, World!\n", stdout)
	})

	t.Run("it should exit with 1 on a fatal failure", func(t *testing.T) {
		// WHEN
		stdout, code := runProcess(t, "HELLO_LOG_LEVEL=chatty")

		// THEN
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
	})
}
