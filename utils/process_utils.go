package utils

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"runtime"
	"sync"
)

// RunCommandWithOutputAndError runs a given exec.Cmd and returns the stdout, stderr, and
// combined output as bytes, or an error if one occurred. If the command was created with
// exec.CommandContext, cancelling or timing out the context kills the process and surfaces
// the failure through the command's error return.
func RunCommandWithOutputAndError(command *exec.Cmd) ([]byte, []byte, []byte, error) {
	// Create our buffers to capture output and errors.
	var bStdout, bStderr, bCombined bytes.Buffer

	// Create a synchronized writer over bCombined to avoid a data race.
	var combinedWriter io.Writer = &synchronizedWriter{writer: &bCombined}

	// Create multi writers to capture output into individual and combined buffers
	stdoutMulti := io.MultiWriter(&bStdout, combinedWriter)
	stderrMulti := io.MultiWriter(&bStderr, combinedWriter)

	// Set our writers
	command.Stdout = stdoutMulti
	command.Stderr = stderrMulti

	// Execute the command
	err := command.Run()

	// Return our results
	return bStdout.Bytes(), bStderr.Bytes(), bCombined.Bytes(), err
}

// RunCommandWithInput feeds the provided bytes to a given exec.Cmd over stdin, then runs it and
// returns the stdout, stderr, and combined output, or an error if one occurred.
func RunCommandWithInput(ctx context.Context, command *exec.Cmd, input []byte) ([]byte, []byte, []byte, error) {
	command.Stdin = bytes.NewReader(input)
	stdout, stderr, combined, err := RunCommandWithOutputAndError(command)

	// Prefer the context's error when the process was killed by cancellation or deadline, so
	// callers see a timeout rather than a generic "signal: killed".
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout, stderr, combined, err
}

// IsWindowsEnvironment returns a boolean indicating whether the current execution environment is a Windows platform.
func IsWindowsEnvironment() bool {
	return runtime.GOOS == "windows"
}

// synchronizedWriter wraps an io.Writer to avoid a data race when writing.
type synchronizedWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

func (s *synchronizedWriter) Write(p []byte) (n int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writer.Write(p)
}
