// File: cmd/main_test.go
package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/dimnorm/internal/observability"
)

// testConfig is a minimal config file so tests never pick up a developer's
// ./config.yaml or ~/.dimnorm/config.yaml.
const testConfig = `
logger:
  level: info
  format: json
input:
  concurrency: 2
`

// cmdResult captures everything one command execution wrote.
type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// resetForTest resets global logger state so the next execution logs into
// its own buffers.
func resetForTest(t *testing.T) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)
}

// writeFile creates name under dir with the given content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes a pristine command tree against the isolated test config.
func runCLI(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) cmdResult {
	t.Helper()
	resetForTest(t)

	cfgPath := writeFile(t, t.TempDir(), "config.yaml", testConfig)

	rootCmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.ExecuteContext(ctx)
	observability.Sync()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// outputLines splits stdout into one entry per emitted document.
func outputLines(stdout string) []string {
	return strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
}
