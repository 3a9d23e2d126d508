// Package utils provides conversion helpers for decoded field values.
// Record fields arrive as untyped values whose concrete Go type depends on
// the decoder (CBOR, JSON, in-memory fixtures); these helpers normalize them.
package utils
