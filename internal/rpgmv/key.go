package rpgmv

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/gogen/pkg/key"
)

// KeySize is the length of a decoded encryption key in bytes.
const KeySize = 16

// keyField is the System.json field holding the hex encoded key.
const keyField = "encryptionKey"

// Key is a decoded encryption key.
type Key [KeySize]byte

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// ParseKey decodes a hex encoded key, rejecting anything that is not exactly KeySize bytes.
func ParseKey(s string) (Key, error) {
	var k Key

	raw, err := key.FromHex(s)
	if err != nil {
		return k, fmt.Errorf("%w: %w", ErrKeyDecode, err)
	}

	if len(raw) != KeySize {
		return k, fmt.Errorf("%w: got %d bytes, want %d", ErrKeyLength, len(raw), KeySize)
	}

	copy(k[:], raw)

	return k, nil
}

// IsKeyFile reports whether a file name is one of the accepted key file spellings.
func IsKeyFile(name string) bool {
	return name == "System.json" || name == "system.json"
}

// KeyFile is a located key together with the file it was read from.
type KeyFile struct {
	Path string
	Key  Key
}

// Locator searches a directory tree for the key file.
type Locator struct {
	// OnCandidate is called before a matching file is read.
	OnCandidate func(path string)

	// OnSkip is called when a matching file did not yield a key.
	OnSkip func(path string, err error)
}

// Locate walks root depth first, in directory listing order (sorted by name),
// and returns the first key that parses and decodes.
// Candidates that fail to parse are skipped. Unreadable directories and key files
// that cannot be opened or read abort the search.
func (l Locator) Locate(root string) (KeyFile, error) {
	var found KeyFile

	err := walkFiles(root, func(path string, statErr error) (bool, error) {
		if !IsKeyFile(filepath.Base(path)) {
			return false, nil
		}

		if l.OnCandidate != nil {
			l.OnCandidate(path)
		}

		if statErr != nil {
			return false, fmt.Errorf("opening key file %q: %w", path, statErr)
		}

		k, err := ReadKeyFile(path)

		switch {
		case err == nil:
			found = KeyFile{Path: path, Key: k}

			return true, nil
		case isRecoverable(err):
			if l.OnSkip != nil {
				l.OnSkip(path, err)
			}

			return false, nil
		default:
			return false, err
		}
	})
	if err != nil {
		return KeyFile{}, err
	}

	if found.Path == "" {
		return KeyFile{}, fmt.Errorf("%w under %q", ErrKeyNotFound, root)
	}

	return found, nil
}

func isRecoverable(err error) bool {
	return errors.Is(err, ErrKeyFileParse) || errors.Is(err, ErrKeyDecode) || errors.Is(err, ErrKeyLength)
}

// ReadKeyFile reads and decodes the key from a single configuration file.
// I/O failures carry none of the package sentinels, which makes them fatal to Locate.
func ReadKeyFile(path string) (Key, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Key{}, fmt.Errorf("opening key file %q: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Key{}, fmt.Errorf("reading key file %q: %w", path, err)
	}

	value, err := parseKeyField(data)
	if err != nil {
		return Key{}, fmt.Errorf("%q: %w", path, err)
	}

	k, err := ParseKey(value)
	if err != nil {
		return Key{}, fmt.Errorf("%q: %w", path, err)
	}

	return k, nil
}

// parseKeyField extracts the key string from a JSON object.
func parseKeyField(data []byte) (string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrKeyFileParse, err)
	}

	raw, ok := doc[keyField]
	if !ok {
		return "", fmt.Errorf("%w: missing %q field", ErrKeyFileParse, keyField)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %w", ErrKeyFileParse, err)
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrKeyFileParse, keyField)
	}

	return str, nil
}
