package bundle

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"pak-index/core/archive"

	"golang.org/x/crypto/chacha20poly1305"
)

// File is one record to be sealed into a bundle.
type File struct {
	Path   string          `json:"path"`
	Record *archive.Record `json:"record"`
}

// Decoder opens bundle files from disk.
type Decoder struct{}

// NewDecoder creates a bundle decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open reads and unseals the bundle at containerPath.
func (d *Decoder) Open(ctx context.Context, containerPath, key string) (archive.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(containerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return Open(data, key)
}

// Open unseals an in-memory bundle.
func Open(data []byte, key string) (*Session, error) {
	raw, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[headerSize:]
	if len(body) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: truncated body", ErrFormat)
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce, sealed := body[:chacha20poly1305.NonceSizeX], body[chacha20poly1305.NonceSizeX:]
	compressed, err := aead.Open(nil, nonce, sealed, data[:headerSize])
	if err != nil {
		return nil, archive.ErrBadKey
	}

	plain, err := decompress(compressed, h.compression, int(h.size))
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decMode.Unmarshal(plain, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode bundle document: %w", err)
	}

	s := &Session{
		files:   make([]string, 0, len(doc.Files)),
		records: make(map[string][]byte, len(doc.Files)),
	}
	for _, f := range doc.Files {
		if _, dup := s.records[f.Path]; dup {
			continue
		}
		s.files = append(s.files, f.Path)
		s.records[f.Path] = f.Record
	}
	return s, nil
}

// Session is an unsealed bundle.
type Session struct {
	files   []string
	records map[string][]byte
}

func (s *Session) ListFiles() []string {
	return append([]string(nil), s.files...)
}

// ReadFile decodes the record stored for path.
func (s *Session) ReadFile(ctx context.Context, path string) (*archive.Record, error) {
	raw, ok := s.records[path]
	if !ok {
		return nil, fmt.Errorf("file %s is not in bundle", path)
	}
	var record archive.Record
	if err := decMode.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &record, nil
}

// Write seals files into a bundle written to w.
func Write(w io.Writer, key string, c Compression, files []File) error {
	raw, err := ParseKey(key)
	if err != nil {
		return err
	}

	doc := document{Files: make([]file, 0, len(files))}
	for _, f := range files {
		if f.Path == "" {
			return errors.New("bundle file without path")
		}
		record := f.Record
		if record == nil {
			record = &archive.Record{}
		}
		encoded, err := encMode.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", f.Path, err)
		}
		doc.Files = append(doc.Files, file{Path: f.Path, Record: encoded})
	}

	plain, err := encMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode bundle document: %w", err)
	}
	if uint64(len(plain)) > math.MaxUint32 {
		return fmt.Errorf("bundle document too large: %d bytes", len(plain))
	}

	compressed, used, err := compress(plain, c)
	if err != nil {
		return err
	}
	hdr := header{version: Version, compression: used, size: uint32(len(plain))}.bytes()

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	var out bytes.Buffer
	out.Grow(len(hdr) + len(nonce) + len(compressed) + chacha20poly1305.Overhead)
	out.Write(hdr)
	out.Write(nonce)
	out.Write(aead.Seal(nil, nonce, compressed, hdr))

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}

// WriteFile seals files into a bundle at path.
func WriteFile(path, key string, c Compression, files []File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	if err := Write(f, key, c, files); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
