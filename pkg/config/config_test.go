package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
iterations: 3
duration: 500ms
workloads:
  - name: steady
    push_burst: 1
    pop_burst: 1
  - name: bursty
    push_burst: 32
    pop_burst: 8
    prefill: 1024
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Iterations)
	require.Equal(t, 500*time.Millisecond, time.Duration(cfg.Duration))
	require.Len(t, cfg.Workloads, 2)
	require.Equal(t, "bursty", cfg.Workloads[1].Name)
	require.Equal(t, 1024, cfg.Workloads[1].Prefill)
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	cases := map[string]string{
		"bad duration": `
iterations: 1
duration: fast
workloads: [{name: a, push_burst: 1}]
`,
		"no workloads": `
iterations: 1
duration: 1s
workloads: []
`,
		"zero push burst": `
iterations: 1
duration: 1s
workloads: [{name: a, push_burst: 0}]
`,
		"duplicate names": `
iterations: 1
duration: 1s
workloads: [{name: a, push_burst: 1}, {name: a, push_burst: 2}]
`,
		"zero iterations": `
iterations: 0
duration: 1s
workloads: [{name: a, push_burst: 1}]
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	require.Len(t, cfg.Benchmarks(), len(cfg.Workloads))
	for i, b := range cfg.Benchmarks() {
		require.Equal(t, cfg.Workloads[i].Name, b.Name)
	}
}
