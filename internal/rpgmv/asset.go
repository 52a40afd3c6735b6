package rpgmv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the type of an asset, derived from its file extension.
type Kind int

const (
	// Picture is an encrypted PNG image.
	Picture Kind = iota
	// Voice is an encrypted M4A audio file.
	Voice
	// Sound is an encrypted OGG audio file.
	Sound
)

// Extensions of encrypted and plain assets, without the leading dot.
const (
	ExtPicture = "rpgmvp"
	ExtVoice   = "rpgmvm"
	ExtSound   = "rpgmvo"

	ExtPNG = "png"
	ExtM4A = "m4a"
	ExtOGG = "ogg"
)

func (k Kind) String() string {
	switch k {
	case Picture:
		return "picture"
	case Voice:
		return "voice"
	case Sound:
		return "sound"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// PlainExt returns the extension of the decrypted form.
// Kinds outside the known set fall back to png; discovery never produces them.
func (k Kind) PlainExt() string {
	switch k {
	case Voice:
		return ExtM4A
	case Sound:
		return ExtOGG
	default:
		return ExtPNG
	}
}

// EncryptedExt returns the extension of the encrypted form.
func (k Kind) EncryptedExt() string {
	switch k {
	case Voice:
		return ExtVoice
	case Sound:
		return ExtSound
	default:
		return ExtPicture
	}
}

// KindOfEncrypted maps an encrypted extension (without dot, case-sensitive) to its kind.
func KindOfEncrypted(ext string) (Kind, error) {
	switch ext {
	case ExtPicture:
		return Picture, nil
	case ExtVoice:
		return Voice, nil
	case ExtSound:
		return Sound, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, ext)
	}
}

// KindOfPlain maps a plain extension (without dot, case-sensitive) to its kind.
func KindOfPlain(ext string) (Kind, error) {
	switch ext {
	case ExtPNG:
		return Picture, nil
	case ExtM4A:
		return Voice, nil
	case ExtOGG:
		return Sound, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, ext)
	}
}

// Asset is a discovered asset file.
type Asset struct {
	Path string
	Kind Kind
}

// Classifier maps a file extension to an asset kind.
type Classifier func(ext string) (Kind, error)

// Discover walks root depth first and returns every file whose extension the classifier accepts.
// Key files are never returned, whatever their extension. Directory symlinks are followed;
// anything that is not a regular file is skipped. An unreadable directory aborts the walk.
func Discover(root string, classify Classifier) ([]Asset, error) {
	var assets []Asset

	err := walkFiles(root, func(path string, statErr error) (bool, error) {
		name := filepath.Base(path)

		if statErr != nil || IsKeyFile(name) {
			return false, nil
		}

		if kind, err := classify(extension(name)); err == nil {
			assets = append(assets, Asset{Path: path, Kind: kind})
		}

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// OutputPath returns the path of the transformed asset: the input stem with ext appended,
// placed in dir, or next to the input when dir is empty.
func OutputPath(input, ext, dir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if dir == "" {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, stem+"."+ext)
}

// extension returns the text after the last dot. Dotfiles without a further dot have none.
func extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}

	return name[idx+1:]
}
