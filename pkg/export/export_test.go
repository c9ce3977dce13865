package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/summary"
)

var (
	aung = identity.OfficerKey{Name: "U AUNG", IDNumber: `12/ABC(N)123456`}
	bo   = identity.OfficerKey{Name: `BO, "THE" BO`}
	chit = identity.OfficerKey{Name: "CHIT", IDNumber: "7"}
)

func officerGraph() *graph.Graph[identity.OfficerKey] {
	return graph.New(identity.CompareKeys, []graph.Edge[identity.OfficerKey]{
		{Source: aung, Target: bo, Weight: 2},
		{Source: chit, Target: aung, Weight: 1},
	})
}

func officerAttrs() []summary.OfficerAttributes {
	return []summary.OfficerAttributes{
		{Key: bo, FullName: `Bo "the" Bo`, Companies: [summary.TopN]string{"Alpha, Ltd", "", ""}},
		{Key: aung, FullName: "U Aung", IDNumber: aung.IDNumber, Companies: [summary.TopN]string{"Alpha, Ltd", "Beta", "Gamma"}},
	}
}

func TestWriteTable_EdgesRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		w, err := NewWriter(filepath.Join(t.TempDir(), "nested", "out"), compress)
		require.NoError(t, err)

		art, err := w.WriteTable(OfficerEdges, EdgeHeader, OfficerEdgeRows(officerGraph()))
		require.NoError(t, err)
		assert.Equal(t, 2, art.Rows)
		assert.Len(t, art.Checksum, 64)
		if compress {
			assert.Equal(t, "officers_edges.csv.sz", art.File)
		} else {
			assert.Equal(t, "officers_edges.csv", art.File)
		}

		edges, err := ReadEdges(w.Path(art))
		require.NoError(t, err)
		require.Len(t, edges, 2)

		for _, e := range edges {
			src, err := identity.ParseOfficerKey(e.Source)
			require.NoError(t, err)
			dst, err := identity.ParseOfficerKey(e.Target)
			require.NoError(t, err)
			assert.Negative(t, src.Compare(dst), "source must precede target")

			weight, ok := officerGraph().Weight(src, dst)
			require.True(t, ok)
			assert.Equal(t, weight, e.Weight)
		}
	}
}

func TestWriteTable_PlainHeaderAndWeights(t *testing.T) {
	w, err := NewWriter(t.TempDir(), false)
	require.NoError(t, err)

	g := graph.New(func(a, b string) int { return strings.Compare(a, b) }, []graph.Edge[string]{
		{Source: "C2", Target: "C1", Weight: 3},
	})
	art, err := w.WriteTable(CompanyEdges, EdgeHeader, CompanyEdgeRows(g))
	require.NoError(t, err)

	data, err := os.ReadFile(w.Path(art))
	require.NoError(t, err)
	assert.Equal(t, "source,target,weight\nC1,C2,3\n", string(data))
}

func TestOfficerAttributes_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		w, err := NewWriter(t.TempDir(), compress)
		require.NoError(t, err)

		art, err := w.WriteTable(OfficerAttributes, OfficerAttributeHeader, OfficerAttributeRows(officerAttrs()))
		require.NoError(t, err)

		got, err := ReadOfficerAttributes(w.Path(art))
		require.NoError(t, err)
		assert.Equal(t, officerAttrs(), got)
	}
}

func TestCompanyAttributes_RoundTrip(t *testing.T) {
	w, err := NewWriter(t.TempDir(), false)
	require.NoError(t, err)

	attrs := []summary.CompanyAttributes{
		{CorpID: "C1", CompanyName: "Alpha, Ltd", AltName: "အယ်လ်ဖာ", Officers: [summary.TopN]string{"U Aung", "", ""}},
		{CorpID: "C2", CompanyName: "Beta\nMultiline", Officers: [summary.TopN]string{"Bo", "Chit", "U Aung"}},
	}
	art, err := w.WriteTable(CompanyAttributes, CompanyAttributeHeader, CompanyAttributeRows(attrs))
	require.NoError(t, err)

	got, err := ReadCompanyAttributes(w.Path(art))
	require.NoError(t, err)
	assert.Equal(t, attrs, got)
}

func TestReadEdges_RejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.csv")
	require.NoError(t, os.WriteFile(path, []byte("Source,Target,Weight\na,b,1\n"), 0o644))

	_, err := ReadEdges(path)
	assert.ErrorIs(t, err, ErrHeader)
}

func TestWriteTable_Deterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	var sums [2]string

	for i, dir := range []string{dirA, dirB} {
		w, err := NewWriter(dir, true)
		require.NoError(t, err)
		art, err := w.WriteTable(OfficerAttributes, OfficerAttributeHeader, OfficerAttributeRows(officerAttrs()))
		require.NoError(t, err)
		sums[i] = art.Checksum
	}

	assert.Equal(t, sums[0], sums[1])
	a, err := os.ReadFile(filepath.Join(dirA, "officers_attributes.csv.sz"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dirB, "officers_attributes.csv.sz"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestManifest_WriteReadVerify(t *testing.T) {
	w, err := NewWriter(t.TempDir(), false)
	require.NoError(t, err)

	edges, err := w.WriteTable(OfficerEdges, EdgeHeader, OfficerEdgeRows(officerGraph()))
	require.NoError(t, err)
	attrs, err := w.WriteTable(OfficerAttributes, OfficerAttributeHeader, OfficerAttributeRows(officerAttrs()))
	require.NoError(t, err)

	path, err := w.WriteManifest([]Artifact{edges, attrs})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir(), ManifestFile), path)

	m, err := ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Artifacts, 2)
	assert.Equal(t, OfficerAttributes, m.Artifacts[0].Name, "sorted by name")
	assert.Equal(t, OfficerEdges, m.Artifacts[1].Name)

	found, ok := m.Find(OfficerEdges)
	require.True(t, ok)
	assert.Equal(t, edges, found)
	_, ok = m.Find("missing")
	assert.False(t, ok)

	require.NoError(t, m.Verify(w.Dir()))

	require.NoError(t, os.WriteFile(w.Path(edges), []byte("source,target,weight\n"), 0o644))
	assert.ErrorIs(t, m.Verify(w.Dir()), ErrChecksumMismatch)
}

func TestWriteFile_RecordsChecksum(t *testing.T) {
	w, err := NewWriter(t.TempDir(), false)
	require.NoError(t, err)

	art, err := w.WriteFile("note", "note.txt", 1, func(out io.Writer) error {
		_, err := io.WriteString(out, "hello\n")
		return err
	})
	require.NoError(t, err)

	sum, err := Checksum(w.Path(art))
	require.NoError(t, err)
	assert.Equal(t, art.Checksum, sum)
}
