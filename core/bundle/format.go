package bundle

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"pak-index/core/archive"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/crypto/chacha20poly1305"
)

// Magic opens every bundle.
const Magic = "PAKB"

// Version is the only bundle layout version understood.
const Version byte = 1

// KeySize is the key length in bytes.
const KeySize = chacha20poly1305.KeySize

const headerSize = len(Magic) + 1 + 1 + 4

// ErrFormat is returned for data that is not a bundle.
var ErrFormat = errors.New("not a bundle")

// Compression identifies the compression of the sealed document.
// Values are stored in the header and must not change.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// ParseKey decodes a hex key, with or without 0x prefix.
func ParseKey(key string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(key), "0x"), "0X"))
	if err != nil {
		return nil, fmt.Errorf("%w: key is not hex", archive.ErrBadKey)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: key has %d bytes, want %d", archive.ErrBadKey, len(raw), KeySize)
	}
	return raw, nil
}

type header struct {
	version     byte
	compression Compression
	size        uint32
}

func (h header) bytes() []byte {
	b := make([]byte, headerSize)
	copy(b, Magic)
	b[4] = h.version
	b[5] = byte(h.compression)
	binary.BigEndian.PutUint32(b[6:], h.size)
	return b
}

func parseHeader(b []byte) (header, error) {
	if len(b) < headerSize || string(b[:len(Magic)]) != Magic {
		return header{}, ErrFormat
	}
	h := header{version: b[4], compression: Compression(b[5]), size: binary.BigEndian.Uint32(b[6:])}
	if h.version != Version {
		return header{}, fmt.Errorf("%w: unsupported version %d", ErrFormat, h.version)
	}
	return h, nil
}

// document is the sealed plaintext.
type document struct {
	Files []file `cbor:"files"`
}

type file struct {
	Path   string          `cbor:"path"`
	Record cbor.RawMessage `cbor:"record"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bundle: CBOR encoder initialization failed: " + err.Error())
	}
	// Records hold free-form field maps; any-typed values must decode as
	// map[string]any rather than CBOR's map[any]any default.
	decMode, err = cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic("bundle: CBOR decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("bundle: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("bundle: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the compressed data and the compression actually used.
// Incompressible LZ4 input is stored uncompressed.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 || n >= len(data) {
			return data, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), CompressionZstd, nil
	default:
		return nil, 0, fmt.Errorf("unsupported compression: %s", c)
	}
}

func decompress(data []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(data) != size {
			return nil, fmt.Errorf("%w: size %d does not match expected %d", ErrFormat, len(data), size)
		}
		return data, nil
	case CompressionLZ4:
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if n != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, size)
		}
		return dst, nil
	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(out), size)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compression %s", ErrFormat, c)
	}
}
