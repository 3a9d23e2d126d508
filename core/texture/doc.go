// Package texture locates companion textures of materials.
//
// Materials name their textures through parameters (a diffuse map, a normal
// map, a specular mask, ...). When a parameter carries an explicit texture
// reference that exists in the file index, the reference wins. Otherwise the
// texture path is guessed from the material's own path: the Materials
// directory is swapped for Textures, the MI_/M_ prefix becomes T_ and the
// parameter's kind code is appended, followed by an ordered list of variants
// covering the known naming irregularities.
//
// # Pattern cache
//
// The first variant that hits for a material is remembered in a PatternCache
// and tried first for the material's other kinds, so only the first slot of a
// material pays for the full scan. A PatternCache lives for one top-level
// query; callers create a fresh one per composed view.
//
// A miss is an absent slot. It is logged at debug level and never fails the
// composition.
package texture
