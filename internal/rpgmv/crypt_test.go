package rpgmv_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/idelchi/rpgmd/internal/rpgmv"
)

func testKey(t *testing.T) rpgmv.Key {
	t.Helper()

	k, err := rpgmv.ParseKey("00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}

	return k
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	k := testKey(t)

	for _, size := range []int{16, 17, 24, 100, 4096} {
		plain := make([]byte, size)
		for i := range plain {
			plain[i] = byte(i * 7)
		}

		original := bytes.Clone(plain)

		enc, err := rpgmv.Encrypt(plain, k)
		if err != nil {
			t.Fatalf("Encrypt(%d bytes): %v", size, err)
		}

		if !bytes.Equal(plain, original) {
			t.Fatalf("Encrypt modified its input")
		}

		if len(enc) != size+rpgmv.HeaderSize {
			t.Fatalf("encrypted length = %d, want %d", len(enc), size+rpgmv.HeaderSize)
		}

		dec, err := rpgmv.Decrypt(enc, k, true)
		if err != nil {
			t.Fatalf("Decrypt(%d bytes): %v", size, err)
		}

		if !bytes.Equal(dec, original) {
			t.Errorf("round trip of %d bytes mismatched", size)
		}
	}
}

func TestDecryptLayout(t *testing.T) {
	t.Parallel()

	k := testKey(t)

	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(0xA0 + i)
	}

	input := bytes.Clone(data)

	out, err := rpgmv.Decrypt(data, k, false)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	if len(out) != len(input)-rpgmv.HeaderSize {
		t.Fatalf("output length = %d, want %d", len(out), len(input)-rpgmv.HeaderSize)
	}

	for i := range rpgmv.KeySize {
		if want := input[rpgmv.HeaderSize+i] ^ k[i]; out[i] != want {
			t.Errorf("out[%d] = %#x, want %#x", i, out[i], want)
		}
	}

	if !bytes.Equal(out[rpgmv.KeySize:], input[rpgmv.MinAssetSize:]) {
		t.Errorf("trailing bytes changed: got % x, want % x", out[rpgmv.KeySize:], input[rpgmv.MinAssetSize:])
	}
}

func TestDecryptErrors(t *testing.T) {
	t.Parallel()

	k := testKey(t)

	tests := []struct {
		name   string
		data   []byte
		verify bool
		want   error
	}{
		{name: "empty", data: nil, want: rpgmv.ErrTruncatedAsset},
		{name: "header only", data: make([]byte, rpgmv.HeaderSize), want: rpgmv.ErrTruncatedAsset},
		{name: "one short", data: make([]byte, rpgmv.MinAssetSize-1), want: rpgmv.ErrTruncatedAsset},
		{name: "bad header", data: make([]byte, rpgmv.MinAssetSize), verify: true, want: rpgmv.ErrInvalidHeader},
		{name: "bad header unverified", data: make([]byte, rpgmv.MinAssetSize)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := rpgmv.Decrypt(tc.data, k, tc.verify)
			if !errors.Is(err, tc.want) {
				t.Errorf("Decrypt() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestEncryptTooShort(t *testing.T) {
	t.Parallel()

	if _, err := rpgmv.Encrypt(make([]byte, rpgmv.KeySize-1), testKey(t)); !errors.Is(err, rpgmv.ErrTruncatedAsset) {
		t.Errorf("Encrypt() error = %v, want %v", err, rpgmv.ErrTruncatedAsset)
	}
}
