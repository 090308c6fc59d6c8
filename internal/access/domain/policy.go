package domain

import (
	"time"

	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// Decision is the outcome of one access evaluation. It is pure and never
// persisted.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Allowed reports whether the decision permits access.
func (d Decision) Allowed() bool { return d == Allow }

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// visibilityRule describes the non-ownership access conditions for one
// visibility class. The Evaluator, the in-memory predicate, and the
// relational AccessFilter all interpret this single table, so the branch
// logic cannot drift between them.
type visibilityRule struct {
	// anyAuthenticated allows every resolved principal.
	anyAuthenticated bool
	// needsAffiliation requires campus affiliation.
	needsAffiliation bool
	// needsEmbargoOver additionally requires that the embargo instant is set
	// and has passed.
	needsEmbargoOver bool
	// needsAllowListing requires the identity to appear in the allow-list.
	needsAllowListing bool
}

var visibilityRules = map[docsDomain.Visibility]visibilityRule{
	docsDomain.VisibilityPublic:  {anyAuthenticated: true},
	docsDomain.VisibilityCampus:  {needsAffiliation: true},
	docsDomain.VisibilityEmbargo: {needsAffiliation: true, needsEmbargoOver: true},
	docsDomain.VisibilityPrivate: {needsAllowListing: true},
}

// ruleFor returns the rule for a visibility class. Unknown or missing values
// fall back to the campus rule, the more restrictive reading.
func ruleFor(v docsDomain.Visibility) visibilityRule {
	if r, ok := visibilityRules[v]; ok {
		return r
	}
	return visibilityRules[docsDomain.VisibilityCampus]
}

// Evaluate decides whether the principal may read the document at the given
// instant. It is a pure function: no side effects, identical results for
// identical inputs. Precedence:
//
//  1. Deny if the document is not approved.
//  2. Allow if the principal owns the document (author, submitter, adviser,
//     uploader); ownership overrides visibility and embargo entirely.
//  3. Allow for operational roles (staff, admin).
//  4. Otherwise apply the visibility rule table.
func Evaluate(doc *docsDomain.Document, p Principal, now time.Time) Decision {
	if doc.Status != docsDomain.StatusApproved {
		return Deny
	}
	if doc.IsOwner(p.Identity) {
		return Allow
	}
	if p.Role.Operational() {
		return Allow
	}
	if visibilityAllows(doc, p, now) {
		return Allow
	}
	return Deny
}

// visibilityAllows interprets the rule table for one (document, principal)
// pair. Embargo is checked as a time lock on top of affiliation: an elapsed
// embargo never admits an unaffiliated principal, and an unset embargo
// instant denies (the write-time invariant should prevent that state, but the
// evaluator fails closed regardless).
func visibilityAllows(doc *docsDomain.Document, p Principal, now time.Time) bool {
	r := ruleFor(doc.Visibility)

	if r.anyAuthenticated {
		return true
	}
	if r.needsAllowListing {
		return doc.AllowsViewer(p.Identity)
	}
	if r.needsAffiliation && !p.Affiliated {
		return false
	}
	if r.needsEmbargoOver {
		return doc.EmbargoUntil != nil && !now.Before(*doc.EmbargoUntil)
	}
	return true
}

// Predicate decides document retrievability for list and search queries.
type Predicate func(doc *docsDomain.Document) bool

// BuildPredicate returns the retrieval predicate for the principal. For every
// document d, predicate(d) equals Evaluate(d, p, now).Allowed(): a document is
// retrievable exactly when it is deliverable. Repositories express the same
// condition relationally through AccessFilter.
func BuildPredicate(p Principal, now time.Time) Predicate {
	return func(doc *docsDomain.Document) bool {
		return Evaluate(doc, p, now).Allowed()
	}
}

// AccessFilter is the relational form of BuildPredicate plus the ownership
// union. Repositories translate it into a WHERE clause; it carries no more
// information than the principal and the evaluation instant.
type AccessFilter struct {
	// Identity is the principal's normalized identity, used for both the
	// allow-list membership test and the ownership union.
	Identity string
	// Unrestricted is set for operational roles: every approved document
	// matches.
	Unrestricted bool
	// Affiliated carries the principal's campus affiliation.
	Affiliated bool
	// Now is the evaluation instant for embargo comparisons.
	Now time.Time
}

// NewAccessFilter derives the relational filter from a principal.
func NewAccessFilter(p Principal, now time.Time) AccessFilter {
	return AccessFilter{
		Identity:     p.Identity,
		Unrestricted: p.Role.Operational(),
		Affiliated:   p.Affiliated,
		Now:          now,
	}
}
