package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

func writeArtifactFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o600))
	return path
}

func TestBuildDocument(t *testing.T) {
	path := writeArtifactFixture(t, "consensus.pdf")

	doc, data, err := buildDocument(CreateDocumentInput{
		FilePath:    path,
		Title:       "Consensus Under Partition",
		Category:    "thesis",
		Year:        2025,
		Visibility:  "campus",
		AuthorEmail: "alice@example.edu",
		Status:      "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("pdf bytes"), data)
	assert.Equal(t, "consensus.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, int64(len(data)), doc.FileSize)
	assert.Equal(t, docsDomain.VisibilityCampus, doc.Visibility)
	assert.Equal(t, docsDomain.StatusApproved, doc.Status)
	assert.Contains(t, doc.StorageKey, doc.ID.String())
	assert.Contains(t, doc.StorageKey, "consensus.pdf")
}

func TestBuildDocument_MissingFile(t *testing.T) {
	_, _, err := buildDocument(CreateDocumentInput{
		FilePath: filepath.Join(t.TempDir(), "absent.pdf"),
		Title:    "Missing",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read artifact file")
}

func TestBuildDocument_InvalidEmbargoInstant(t *testing.T) {
	path := writeArtifactFixture(t, "embargoed.pdf")

	_, _, err := buildDocument(CreateDocumentInput{
		FilePath:     path,
		Title:        "Embargoed",
		Visibility:   "embargo",
		EmbargoUntil: "next tuesday",
		Status:       "approved",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse embargo instant")
}

func TestBuildDocument_ValidationFailures(t *testing.T) {
	path := writeArtifactFixture(t, "doc.pdf")

	tests := []struct {
		name  string
		input CreateDocumentInput
	}{
		{
			"embargo without instant",
			CreateDocumentInput{FilePath: path, Title: "T", Visibility: "embargo", Status: "approved"},
		},
		{
			"unknown visibility",
			CreateDocumentInput{FilePath: path, Title: "T", Visibility: "departmental", Status: "approved"},
		},
		{
			"unknown status",
			CreateDocumentInput{FilePath: path, Title: "T", Visibility: "public", Status: "archived"},
		},
		{
			"blank title",
			CreateDocumentInput{FilePath: path, Title: "   ", Visibility: "public", Status: "approved"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildDocument(tt.input)
			require.Error(t, err)
		})
	}
}
