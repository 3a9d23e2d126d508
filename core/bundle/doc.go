// Package bundle implements archive.Decoder for sealed record bundles.
//
// A bundle carries export graphs that an external extraction tool already
// decoded. It is the interchange format the indexer reads; it does not
// describe the game's own container format.
//
// # Layout
//
//	[magic "PAKB": 4] [version: 1] [compression: 1] [plain size: 4, big endian]
//	[nonce: 24] [XChaCha20-Poly1305 ciphertext + tag]
//
// The 10 byte header is the additional authenticated data of the seal. The
// plaintext is the compressed CBOR document holding the ordered file list;
// each record is kept as raw CBOR so a malformed record only fails its own
// ReadFile.
//
// Keys are 32 bytes written as hex with an optional 0x prefix. A key that
// does not open the seal yields archive.ErrBadKey.
package bundle
