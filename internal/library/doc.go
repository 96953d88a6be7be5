package library

// Package library manages the on-disk model library: scanning the root
// directory into model entries, creating model packages, activating G-code
// into the root, editing metadata, and relocating the whole library. All
// mutations keep model.json authoritative and roll back partial file copies
// on failure.
