package cfg_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/kpotier/dislgen/pkg/cfg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLaunch_Unknown: an unknown calculation name is rejected.
func TestLaunch_Unknown(t *testing.T) {
	err := cfg.Launch("nope", "anything.toml")
	assert.EqualError(t, err, "calculation `nope` doesn't exist")
}

// TestNew_Mismatch: Types and Files must have matching shapes.
func TestNew_Mismatch(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(p,
		[]byte("types = [[\"generate\"]]\nfiles = []\n"), 0o644))
	_, err := cfg.New(p)
	assert.Error(t, err)
}

// TestStart runs one generate calculation end to end through the dispatcher.
func TestStart(t *testing.T) {
	dir := t.TempDir()
	genCfg := filepath.Join(dir, "generate.toml")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(genCfg, []byte(`[generate]
file_out = "`+out+`"
crystal = "FCC"
lbox = 10.0
num_lines = 12
theta = [0.0]
seed = 2
`), 0o644))

	p := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(p,
		[]byte("types = [[\"generate\"]]\nfiles = [[\""+genCfg+"\"]]\n"), 0o644))

	c, err := cfg.New(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	c.Start(log.New(&buf, "", 0))
	assert.NotContains(t, buf.String(), "Launch")
	assert.FileExists(t, out)
}
