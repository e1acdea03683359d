package types

// Version is the canonical project version.
// The CLI and FORMAT.md reference this constant; all components share a
// single version (lockstep versioning).
const Version = "0.2.0"
