// Package domain defines the access-control domain: principals, the
// visibility rule table, capabilities, and the signing key types.
//
// A Principal is constructed exactly once at the trust boundary (the resolver
// services) and never extended downstream. All authorization decisions are
// pure functions over (document, principal, instant).
package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// Role is the institutional role carried by a bearer credential.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role claim. Unknown roles fail closed.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleFaculty, RoleStaff, RoleAdmin:
		return r, nil
	default:
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, fmt.Sprintf("unknown role %q", s))
	}
}

// Operational reports whether the role may read all approved documents
// regardless of visibility.
func (r Role) Operational() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Provenance records which credential kind produced a principal.
type Provenance int

const (
	// ProvenanceBearer marks a principal resolved from a long-lived session
	// credential.
	ProvenanceBearer Provenance = iota
	// ProvenanceCapability marks a principal resolved from a single-document
	// capability.
	ProvenanceCapability
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceCapability:
		return "capability"
	default:
		return "bearer"
	}
}

// Principal is a resolved identity used for one authorization decision.
type Principal struct {
	// Identity is the normalized (lowercased) email address.
	Identity string
	// Role is the institutional role from the credential.
	Role Role
	// Affiliated reports whether Identity belongs to the institutional
	// domain. Computed once at construction.
	Affiliated bool
	// Provenance records the credential kind that produced this principal.
	Provenance Provenance
}

// NewPrincipal builds the canonical principal for an identity. The identity
// is lowercased before any comparison and the domain affiliation is derived
// here, exactly once.
func NewPrincipal(identity string, role Role, institutionDomain string, provenance Provenance) Principal {
	identity = strings.ToLower(strings.TrimSpace(identity))
	return Principal{
		Identity:   identity,
		Role:       role,
		Affiliated: affiliatedWith(identity, institutionDomain),
		Provenance: provenance,
	}
}

// affiliatedWith reports whether the identity's domain suffix exactly matches
// the institutional domain. The match is anchored to the end of the string:
// "alice@sub.example.edu" and "alice@notexample.edu" are both unaffiliated
// with "example.edu".
func affiliatedWith(identity, institutionDomain string) bool {
	institutionDomain = strings.ToLower(strings.TrimSpace(institutionDomain))
	if institutionDomain == "" {
		return false
	}
	at := strings.LastIndex(identity, "@")
	if at < 0 {
		return false
	}
	return identity[at+1:] == institutionDomain
}
