package domain

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityTTL is the fixed lifetime of a minted capability. Capabilities
// are checked at the single point of consumption, so no background expiry
// sweep exists; an abandoned capability simply stops verifying.
const CapabilityTTL = 2 * time.Minute

// Capability is a short-lived signed grant for exactly one
// (subject, document) pair. It never carries a role grant or access to any
// other document; the role and affiliation fields are a mint-time snapshot
// kept for audit logging only.
type Capability struct {
	// Subject is the normalized identity the capability was minted for.
	Subject string
	// DocumentID is the single document the capability authorizes.
	DocumentID uuid.UUID
	// Role is the subject's role at mint time (audit only).
	Role Role
	// Affiliated is the subject's affiliation at mint time (audit only).
	Affiliated bool
	// ExpiresAt is the instant after which the capability stops verifying.
	ExpiresAt time.Time
}
