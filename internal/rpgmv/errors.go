package rpgmv

import "errors"

var (
	// ErrKeyNotFound is returned when no configuration file with a usable key exists in the tree.
	ErrKeyNotFound = errors.New("encryption key not found")
	// ErrKeyFileParse is returned when a configuration file is not a JSON object with a string key field.
	ErrKeyFileParse = errors.New("parsing key file")
	// ErrKeyDecode is returned when the key field is not valid hex.
	ErrKeyDecode = errors.New("decoding key")
	// ErrKeyLength is returned when the decoded key is not KeySize bytes long.
	ErrKeyLength = errors.New("invalid key length")
	// ErrTruncatedAsset is returned when an asset is too small to hold the header and masked block.
	ErrTruncatedAsset = errors.New("truncated asset")
	// ErrInvalidHeader is returned when header verification is requested and the fake header does not match.
	ErrInvalidHeader = errors.New("invalid asset header")
	// ErrUnknownKind is returned for file extensions outside the recognized asset kinds.
	ErrUnknownKind = errors.New("unknown asset kind")
)
