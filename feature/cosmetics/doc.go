// Package cosmetics composes consumer-facing views of cosmetic items.
//
// An item is pulled from its category bucket and joined with the records it
// references: its series (by export index), its set (by gameplay tag into the
// set table) and, for characters, the hero definition with its
// specializations, character parts, materials and texture slots.
//
// # Item types
//
// Queryable types are an explicit table binding a type name to a category and
// an optional composer. The table is validated against the classifier when
// the service is built, so a type pointing at an unknown category is a startup
// error. Querying a type missing from the table returns ErrUnknownItemType.
//
// # Missing references
//
// A reference that cannot be resolved leaves its field null (series, set,
// hero) or omits the entry (parts, materials, texture paths). The rest of the
// view is still returned.
//
// # HTTP Endpoints
//
//   - GET /items : item types and their counts.
//   - GET /items/:type : item ids of a type.
//   - GET /items/:type/:id : composed item view (400 unknown type, 404 unknown id).
package cosmetics
