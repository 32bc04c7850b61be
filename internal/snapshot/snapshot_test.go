package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bardionson/gallery-cli/internal/enrich"
	"github.com/bardionson/gallery-cli/internal/model"
)

func sample() []enrich.Collection {
	return []enrich.Collection{
		{
			CollectionGroup: model.CollectionGroup{
				Name: "SuperRare",
				Slug: "superrare",
				NFTs: []model.NFT{
					{
						Identifier: "21",
						Collection: "superrare",
						Contract:   "0x41a322b28d0ff354040e2cbc676f0320d8c8850d",
						Name:       "Block Study",
						ImageURL:   "https://img.example/21.png",
					},
				},
			},
			Priority:   10,
			CoverImage: "https://img.example/21.png",
		},
	}
}

func TestWriteThenLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "nfts.json")
	require.NoError(t, Write(path, sample()))

	got, err := Load(path)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "superrare", got[0].Slug)
	require.Len(t, got[0].NFTs, 1)
	assert.Equal(t, "Block Study", got[0].NFTs[0].Name)
	assert.Equal(t, 10, got[0].Priority)
}

func TestWrite_PrettyPrints(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nfts.json")
	require.NoError(t, Write(path, sample()))

	data, err := os.ReadFile(path)

	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {", "expected indented output")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nfts.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, Write(path, sample()))

	got, err := Load(path)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, Write(filepath.Join(dir, "nfts.json"), sample()))

	entries, err := os.ReadDir(dir)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "nfts.json", entries[0].Name())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nfts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
