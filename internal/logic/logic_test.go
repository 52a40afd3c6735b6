package logic_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/logic"
	"github.com/idelchi/rpgmd/internal/processor"
	"github.com/idelchi/rpgmd/internal/rpgmv"
)

const hexKey = "00112233445566778899aabbccddeeff"

func write(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
}

// gameTree builds a root with data/System.json and img/pic.rpgmvp holding a 40-byte body.
func gameTree(t *testing.T) (root string, asset []byte) {
	t.Helper()

	root = t.TempDir()

	write(t, filepath.Join(root, "data", "System.json"), []byte(`{"encryptionKey":"`+hexKey+`"}`))

	asset = make([]byte, 40)
	copy(asset, rpgmv.Header[:])

	for i := rpgmv.HeaderSize; i < len(asset); i++ {
		asset[i] = byte(0x40 + i)
	}

	write(t, filepath.Join(root, "img", "pic.rpgmvp"), asset)

	return root, asset
}

func TestRunInPlace(t *testing.T) {
	t.Parallel()

	root, asset := gameTree(t)

	cfg := &config.Config{Root: root, Parallel: 1, Quiet: true}
	if err := logic.Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "img", "pic.png"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if len(got) != 24 {
		t.Fatalf("output is %d bytes, want 24", len(got))
	}

	key, err := rpgmv.ParseKey(hexKey)
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}

	for i := range rpgmv.KeySize {
		if want := asset[rpgmv.HeaderSize+i] ^ key[i]; got[i] != want {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want)
		}
	}

	if !bytes.Equal(got[16:], asset[32:]) {
		t.Errorf("trailing bytes = % x, want % x", got[16:], asset[32:])
	}
}

func TestRunCopyModeCreatesOutput(t *testing.T) {
	t.Parallel()

	root, _ := gameTree(t)
	out := filepath.Join(t.TempDir(), "nested", "out")

	cfg := &config.Config{Root: root, Output: out, Parallel: 1, Quiet: true}
	if err := logic.Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "pic.png")); err != nil {
		t.Errorf("missing flattened output: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "img", "pic.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("copy mode wrote in place: %v", err)
	}
}

func TestRunWithoutKey(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "img", "pic.rpgmvp"), make([]byte, 40))

	err := logic.Run(&config.Config{Root: root, Parallel: 1, Quiet: true})
	if !errors.Is(err, rpgmv.ErrKeyNotFound) {
		t.Fatalf("Run() error = %v, want %v", err, rpgmv.ErrKeyNotFound)
	}

	if _, err := os.Stat(filepath.Join(root, "img", "pic.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("asset processed without a key: %v", err)
	}
}

func TestRunKeyOverride(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	plain := bytes.Repeat([]byte{0x5A}, 32)

	key, err := rpgmv.ParseKey("ffeeddccbbaa99887766554433221100")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}

	enc, err := rpgmv.Encrypt(plain, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	write(t, filepath.Join(root, "se.rpgmvo"), enc)

	cfg := &config.Config{Root: root, Key: key.String(), Parallel: 1, Quiet: true}
	if err := logic.Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "se.ogg"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if !bytes.Equal(got, plain) {
		t.Errorf("output = % x, want % x", got, plain)
	}
}

func TestRunDry(t *testing.T) {
	t.Parallel()

	root, _ := gameTree(t)

	if err := logic.Run(&config.Config{Root: root, Parallel: 1, Quiet: true, Dry: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "img", "pic.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("dry run wrote output: %v", err)
	}
}

func TestRunEncryptThenDecrypt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "www", "data", "System.json"), []byte(`{"encryptionKey":"`+hexKey+`"}`))

	plain := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR and then some image data")
	write(t, filepath.Join(root, "www", "img", "title.png"), plain)

	if err := logic.Run(&config.Config{Root: root, Parallel: 1, Quiet: true, Encrypt: true, Delete: true}); err != nil {
		t.Fatalf("encrypt Run: %v", err)
	}

	if err := logic.Run(&config.Config{Root: root, Parallel: 1, Quiet: true}); err != nil {
		t.Fatalf("decrypt Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "www", "img", "title.png"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if !bytes.Equal(got, plain) {
		t.Errorf("round trip = %q, want %q", got, plain)
	}
}

func TestRunExcludes(t *testing.T) {
	t.Parallel()

	root, asset := gameTree(t)
	write(t, filepath.Join(root, "img", "skip", "other.rpgmvp"), asset)

	cfg := &config.Config{Root: root, Parallel: 1, Quiet: true, Exclude: []string{"img/skip/*"}}
	if err := logic.Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "img", "skip", "other.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("excluded asset processed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "img", "pic.png")); err != nil {
		t.Errorf("included asset missing: %v", err)
	}
}

func TestRunDeleteRefusesCollisions(t *testing.T) {
	t.Parallel()

	root, asset := gameTree(t)
	write(t, filepath.Join(root, "img", "faces", "Actor1.rpgmvp"), asset)
	write(t, filepath.Join(root, "img", "sv_actors", "Actor1.rpgmvp"), asset)

	out := t.TempDir()

	err := logic.Run(&config.Config{Root: root, Output: out, Parallel: 1, Quiet: true, Delete: true})
	if !errors.Is(err, processor.ErrOutputCollision) {
		t.Fatalf("Run() error = %v, want %v", err, processor.ErrOutputCollision)
	}

	for _, input := range []string{
		filepath.Join(root, "img", "faces", "Actor1.rpgmvp"),
		filepath.Join(root, "img", "sv_actors", "Actor1.rpgmvp"),
		filepath.Join(root, "img", "pic.rpgmvp"),
	} {
		if _, err := os.Stat(input); err != nil {
			t.Errorf("input %q lost: %v", input, err)
		}
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("output dir holds %d entries, want none", len(entries))
	}
}

func TestRunCollisionsWithoutDelete(t *testing.T) {
	t.Parallel()

	root, asset := gameTree(t)
	write(t, filepath.Join(root, "img", "faces", "Actor1.rpgmvp"), asset)
	write(t, filepath.Join(root, "img", "sv_actors", "Actor1.rpgmvp"), asset)

	out := t.TempDir()

	if err := logic.Run(&config.Config{Root: root, Output: out, Parallel: 1, Quiet: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "Actor1.png")); err != nil {
		t.Errorf("missing flattened output: %v", err)
	}
}
