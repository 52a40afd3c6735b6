package rpgmv

import (
	"bytes"
	"fmt"
)

// HeaderSize is the length of the fake header prepended to encrypted assets.
const HeaderSize = 16

// MinAssetSize is the smallest valid encrypted asset: a header and one masked block.
const MinAssetSize = HeaderSize + KeySize

// Header is the signature RPG Maker MV writes as the fake header.
//
//nolint:gochecknoglobals
var Header = [HeaderSize]byte{
	0x52, 0x50, 0x47, 0x4D, 0x56, 0x00, 0x00, 0x00, // "RPGMV"
	0x00, 0x03, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Decrypt drops the fake header of an encrypted asset and unmasks the following block.
// The returned slice aliases data, which is modified in place.
// With verify set, the header must equal Header.
func Decrypt(data []byte, k Key, verify bool) ([]byte, error) {
	if len(data) < MinAssetSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedAsset, len(data), MinAssetSize)
	}

	if verify && !bytes.Equal(data[:HeaderSize], Header[:]) {
		return nil, fmt.Errorf("%w: % x", ErrInvalidHeader, data[:HeaderSize])
	}

	body := data[HeaderSize:]
	mask(body, k)

	return body, nil
}

// Encrypt prepends Header to a plain asset and masks its first block.
// The input is left untouched.
func Encrypt(data []byte, k Key) ([]byte, error) {
	if len(data) < KeySize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedAsset, len(data), KeySize)
	}

	out := make([]byte, HeaderSize+len(data))
	copy(out, Header[:])
	copy(out[HeaderSize:], data)
	mask(out[HeaderSize:], k)

	return out, nil
}

// mask XORs the first KeySize bytes of block with the key.
func mask(block []byte, k Key) {
	for i := range KeySize {
		block[i] ^= k[i]
	}
}
