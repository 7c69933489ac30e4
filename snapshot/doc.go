// Package snapshot persists a whole catalog to a single compressed binary
// file and restores it, so processes can skip re-parsing the per-type JSON
// resources at startup.
//
// Snapshot files are self-describing: the header records the codec and
// compression names, so a file written with one configuration opens
// correctly under another. The payload carries a CRC32 checksum to detect
// accidental corruption (not tampering).
//
// Restoring always produces a fresh catalog; snapshots never mutate a live
// one.
package snapshot
