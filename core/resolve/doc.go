// Package resolve follows references between decoded records.
//
// Three lookup modes are supported:
//
//   - ByIndex scans a bucket for the record carrying an export index. Zero
//     matches is a miss; several matches resolve to the first record in bucket
//     insertion order.
//   - ByPath normalizes an asset path embedded in a reference field (virtual
//     root mapped to the content root, object qualifier stripped, asset
//     extension appended) and materializes it.
//   - ByTag picks the first tag matching a naming pattern and uses it as a
//     row key into a lookup table record.
//
// Every lookup returns nil on a miss. A nil reference means the feature is
// absent for the record, not that the query failed.
package resolve
