package pipeline

import (
	"io"

	"github.com/dd0wney/cluso-leaknet/pkg/export"
	"github.com/dd0wney/cluso-leaknet/pkg/gexf"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/visualization"
)

// seedCanvas is the frame the seed positions of exported graphs are laid
// out in.
var seedCanvas = visualization.LayoutConfig{Width: 1000, Height: 1000, Padding: 50}

func (r *run) persist() error {
	w, err := export.NewWriter(r.cfg.Output.Dir, r.cfg.Output.Compress)
	if err != nil {
		return err
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{export.OfficerEdges, export.EdgeHeader, export.OfficerEdgeRows(r.officers)},
		{export.CompanyEdges, export.EdgeHeader, export.CompanyEdgeRows(r.companies)},
		{export.OfficerAttributes, export.OfficerAttributeHeader, export.OfficerAttributeRows(r.officerAttrs)},
		{export.CompanyAttributes, export.CompanyAttributeHeader, export.CompanyAttributeRows(r.companyAttrs)},
	}
	for _, t := range tables {
		a, err := w.WriteTable(t.name, t.header, t.rows)
		if err != nil {
			return err
		}
		r.addArtifact(w, a)
	}

	if r.cfg.Output.GEXF {
		if err := r.writeGraphs(w); err != nil {
			return err
		}
	}

	path, err := w.WriteManifest(r.result.Artifacts)
	if err != nil {
		return err
	}
	r.result.Manifest = path
	return nil
}

func (r *run) addArtifact(w *export.Writer, a export.Artifact) {
	r.result.Artifacts = append(r.result.Artifacts, a)
	r.metrics.RecordArtifact(fileSize(w.Path(a)))
	r.logger.Debug("artifact written", logging.File(a.File), logging.Int("rows", a.Rows))
}

func (r *run) writeGraphs(w *export.Writer) error {
	names := make(map[identity.OfficerKey]string, len(r.officerAttrs))
	for _, a := range r.officerAttrs {
		names[a.Key] = a.FullName
	}
	officerIDs := make([]string, 0, r.officers.NodeCount())
	for _, n := range r.officers.Nodes() {
		officerIDs = append(officerIDs, n.String())
	}

	a, err := w.WriteFile(export.OfficerGraph, export.OfficerGraph+".gexf", r.officers.NodeCount(), func(out io.Writer) error {
		return gexf.Write(out, r.officers, gexf.Options[identity.OfficerKey]{
			ID:          identity.OfficerKey.String,
			Label:       func(k identity.OfficerKey) string { return names[k] },
			Positions:   visualization.SeedPositions(officerIDs, seedCanvas),
			Description: "officers linked by shared companies",
		})
	})
	if err != nil {
		return err
	}
	r.addArtifact(w, a)

	companyNames := make(map[string]string, len(r.companyAttrs))
	for _, c := range r.companyAttrs {
		companyNames[c.CorpID] = c.CompanyName
	}
	a, err = w.WriteFile(export.CompanyGraph, export.CompanyGraph+".gexf", r.companies.NodeCount(), func(out io.Writer) error {
		return gexf.Write(out, r.companies, gexf.Options[string]{
			ID:          func(id string) string { return id },
			Label:       func(id string) string { return companyNames[id] },
			Positions:   visualization.SeedPositions(r.companies.Nodes(), seedCanvas),
			Description: "companies linked by shared officers",
		})
	})
	if err != nil {
		return err
	}
	r.addArtifact(w, a)
	return nil
}
