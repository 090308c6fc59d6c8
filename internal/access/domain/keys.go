package domain

// BearerKey signs and verifies session bearer tokens.
//
// BearerKey and CapabilityKey are distinct types so the two signing secrets
// cannot be swapped at a call site: compromising one secret must not allow
// forging the other credential kind, and the type system keeps the code from
// ever mixing them.
type BearerKey []byte

// CapabilityKey signs and verifies short-lived document capabilities.
type CapabilityKey []byte
