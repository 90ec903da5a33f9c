// Package packs loads, caches, and tracks progress for level packs.
//
// A pack is a JSON file holding an ordered list of levels. The manager always
// carries the built-in tutorial pack and loads the rest from its packs
// directory on demand, caching parsed packs. Completion progress (best time,
// completion count per level) is kept per pack and persisted as a single JSON
// file.
package packs
