package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestVocab(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"kokler.json":       `{"kitap": 0, "merhaba": 1, "dünya": 2}`,
		"ekler.json":        `{"lar": 3, "ım": 4, "ı": 5}`,
		"bpe_tokenler.json": `{"a": 6, "b": 7, " ": 8}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"tokenize", "encode", "decode", "vocab", "batch"} {
		assert.Contains(t, names, want)
	}
}

func TestEncodeCommand(t *testing.T) {
	dir := writeTestVocab(t)
	out, err := runCommand(t, "encode", "--vocab-dir", dir, "kitaplarımı")
	require.NoError(t, err)
	assert.Equal(t, "0 3 4 5\n", out)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := writeTestVocab(t)
	out, err := runCommand(t, "encode", "--vocab-dir", dir, "Merhaba dünya")
	require.NoError(t, err)

	args := append([]string{"decode", "--vocab-dir", dir}, strings.Fields(out)...)
	decoded, err := runCommand(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "Merhaba dünya\n", decoded)
}

func TestDecodeCommand_BadArgument(t *testing.T) {
	dir := writeTestVocab(t)
	_, err := runCommand(t, "decode", "--vocab-dir", dir, "notanumber")
	assert.Error(t, err)
}

func TestVocabCommand(t *testing.T) {
	dir := writeTestVocab(t)
	out, err := runCommand(t, "vocab", "--vocab-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "vocab size: 17")
	assert.Contains(t, out, "<uppercase>")
}
