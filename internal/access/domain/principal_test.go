package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"student", RoleStudent},
		{"faculty", RoleFaculty},
		{"staff", RoleStaff},
		{"admin", RoleAdmin},
		{" Admin ", RoleAdmin},
		{"STAFF", RoleStaff},
	}
	for _, tt := range tests {
		role, err := ParseRole(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, role)
	}
}

func TestParseRole_UnknownFailsClosed(t *testing.T) {
	for _, input := range []string{"", "superuser", "root", "professor"} {
		_, err := ParseRole(input)
		require.Error(t, err, input)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	}
}

func TestRoleOperational(t *testing.T) {
	assert.False(t, RoleStudent.Operational())
	assert.False(t, RoleFaculty.Operational())
	assert.True(t, RoleStaff.Operational())
	assert.True(t, RoleAdmin.Operational())
}

func TestNewPrincipal_NormalizesIdentity(t *testing.T) {
	p := NewPrincipal("  Alice@Example.EDU ", RoleStudent, "example.edu", ProvenanceBearer)
	assert.Equal(t, "alice@example.edu", p.Identity)
	assert.True(t, p.Affiliated)
	assert.Equal(t, ProvenanceBearer, p.Provenance)
}

func TestNewPrincipal_Affiliation(t *testing.T) {
	tests := []struct {
		identity   string
		affiliated bool
	}{
		{"alice@example.edu", true},
		{"ALICE@EXAMPLE.EDU", true},
		{"alice@gmail.com", false},
		// The match is anchored to the end of the identity. Neither a
		// lookalike domain nor a sub-domain counts as affiliated.
		{"alice@notexample.edu", false},
		{"alice@cs.example.edu", false},
		{"alice@example.edu.attacker.io", false},
		{"no-at-sign", false},
		{"", false},
	}
	for _, tt := range tests {
		p := NewPrincipal(tt.identity, RoleStudent, "example.edu", ProvenanceBearer)
		assert.Equal(t, tt.affiliated, p.Affiliated, tt.identity)
	}
}

func TestNewPrincipal_EmptyInstitutionDomain(t *testing.T) {
	p := NewPrincipal("alice@example.edu", RoleStudent, "", ProvenanceBearer)
	assert.False(t, p.Affiliated)
}

func TestProvenanceString(t *testing.T) {
	assert.Equal(t, "bearer", ProvenanceBearer.String())
	assert.Equal(t, "capability", ProvenanceCapability.String())
}
