// Package pipeline runs the full build: load, index, project, filter,
// summarize, persist and publish.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-leaknet/pkg/algorithms"
	"github.com/dd0wney/cluso-leaknet/pkg/config"
	"github.com/dd0wney/cluso-leaknet/pkg/export"
	"github.com/dd0wney/cluso-leaknet/pkg/graph"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/membership"
	"github.com/dd0wney/cluso-leaknet/pkg/metrics"
	"github.com/dd0wney/cluso-leaknet/pkg/projection"
	"github.com/dd0wney/cluso-leaknet/pkg/records"
	"github.com/dd0wney/cluso-leaknet/pkg/sink"
	"github.com/dd0wney/cluso-leaknet/pkg/summary"
)

// Stage names, used in logs and metrics.
const (
	StageLoad      = "load"
	StageIndex     = "index"
	StageProject   = "project"
	StageFilter    = "filter"
	StageSummarize = "summarize"
	StagePersist   = "persist"
	StagePublish   = "publish"
)

// HubCount is how many best connected nodes GraphStats reports.
const HubCount = 3

// GraphStats describes one projection before and after filtering. The
// fields after FilteredEdges describe the filtered graph.
type GraphStats struct {
	ProjectedNodes    int
	ProjectedEdges    int
	Components        int
	ComponentSizes    map[int]int // component size -> number of components
	FilteredNodes     int
	FilteredEdges     int
	TotalWeight       int
	Density           float64
	AverageClustering float64
	Hubs              []string
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Files     int
	Records   int
	Accepted  int
	Rejected  map[membership.Rejection]int
	Officers  GraphStats
	Companies GraphStats
	Artifacts []export.Artifact
	Manifest  string
	Published []string
	Stages    []StageTiming
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSinks publishes every run to sinks after the artifacts are written.
func WithSinks(sinks ...sink.Sink) Option {
	return func(p *Pipeline) { p.sinks = append(p.sinks, sinks...) }
}

// WithRunID replaces the random run ID generator.
func WithRunID(newID func() string) Option {
	return func(p *Pipeline) { p.newRunID = newID }
}

// Pipeline turns an input directory into the output artifacts.
type Pipeline struct {
	cfg      *config.Config
	logger   logging.Logger
	metrics  *metrics.Registry
	sinks    []sink.Sink
	newRunID func() string
}

// New creates a pipeline for cfg.
func New(cfg *config.Config, logger logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	p := &Pipeline{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.NewRegistry(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// run carries the state of one Run between stages.
type run struct {
	*Pipeline
	ctx    context.Context
	logger logging.Logger
	result *Result

	dataset      *records.Dataset
	index        *membership.Index
	resolver     *identity.Resolver
	officers     *graph.Graph[identity.OfficerKey]
	companies    *graph.Graph[string]
	officerAttrs []summary.OfficerAttributes
	companyAttrs []summary.CompanyAttributes
}

// Run executes every stage once. Local artifacts are complete before any
// sink is contacted; a sink failure fails the run but leaves them in place.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	id := p.newRunID()
	r := &run{
		Pipeline: p,
		ctx:      ctx,
		logger:   p.logger.With(logging.RunID(id)),
		result:   &Result{RunID: id},
	}

	r.logger.Info("run started",
		logging.Path(p.cfg.Input),
		logging.String("output", p.cfg.Output.Dir),
		logging.Bool("compress", p.cfg.Output.Compress),
		logging.Bool("gexf", p.cfg.Output.GEXF),
	)

	stages := []struct {
		name string
		fn   func() error
	}{
		{StageLoad, r.load},
		{StageIndex, r.buildIndex},
		{StageProject, r.project},
		{StageFilter, r.filter},
		{StageSummarize, r.summarize},
		{StagePersist, r.persist},
		{StagePublish, r.publish},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		timer := logging.StartStage(r.logger, s.name)
		if err := s.fn(); err != nil {
			timer.EndError(err)
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		d := timer.End()
		r.metrics.RecordStage(s.name, d)
		r.result.Stages = append(r.result.Stages, StageTiming{Stage: s.name, Duration: d})
	}

	r.metrics.UpdateSystemMetrics()
	if path := p.cfg.Output.MetricsFile; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			return nil, fmt.Errorf("write metrics %s: %w", path, err)
		}
	}

	r.logger.Info("run complete",
		logging.Int("officers", r.result.Officers.FilteredNodes),
		logging.Int("corporations", r.result.Companies.FilteredNodes),
		logging.Int("artifacts", len(r.result.Artifacts)),
		logging.Any("rejected", r.result.Rejected),
	)
	return r.result, nil
}

func (r *run) load() error {
	ds, err := records.Load(r.cfg.Input, r.logger)
	if err != nil {
		return err
	}
	r.dataset = ds
	r.result.Files = ds.Files
	r.result.Records = len(ds.Records)
	r.metrics.RecordLoad(ds.Files, len(ds.Records))
	return nil
}

func (r *run) buildIndex() error {
	idx, resolver, stats := membership.Build(r.dataset.Records, r.logger)
	r.index, r.resolver = idx, resolver
	r.result.Accepted = stats.Accepted
	r.result.Rejected = stats.ByReason
	for reason, n := range stats.ByReason {
		r.metrics.RecordRejected(string(reason), n)
	}
	// the records are not needed past this point
	r.dataset = nil
	return nil
}

func (r *run) project() error {
	r.officers = projection.Officers(r.index)
	r.companies = projection.Companies(r.index)

	r.result.Officers.ProjectedNodes = r.officers.NodeCount()
	r.result.Officers.ProjectedEdges = r.officers.EdgeCount()
	r.result.Companies.ProjectedNodes = r.companies.NodeCount()
	r.result.Companies.ProjectedEdges = r.companies.EdgeCount()

	r.recordGraph(metrics.GraphOfficers, metrics.StageProjected, r.officers.NodeCount(), r.officers.EdgeCount())
	r.recordGraph(metrics.GraphCompanies, metrics.StageProjected, r.companies.NodeCount(), r.companies.EdgeCount())
	return nil
}

func (r *run) filter() error {
	r.officers = filterLargest(r.officers, &r.result.Officers)
	r.companies = filterLargest(r.companies, &r.result.Companies)

	r.recordGraph(metrics.GraphOfficers, metrics.StageFiltered, r.officers.NodeCount(), r.officers.EdgeCount())
	r.recordGraph(metrics.GraphCompanies, metrics.StageFiltered, r.companies.NodeCount(), r.companies.EdgeCount())

	r.result.Officers.Hubs = hubs(r.officers, r.resolver.DisplayName)
	r.result.Companies.Hubs = hubs(r.companies, r.resolver.CompanyName)
	return nil
}

// filterLargest keeps the largest component of g and fills the component
// and structure fields of stats.
func filterLargest[K comparable](g *graph.Graph[K], stats *GraphStats) *graph.Graph[K] {
	filtered, all := algorithms.LargestComponent(g)

	stats.Components = len(all.Components)
	stats.ComponentSizes = all.SizeHistogram()
	if largest := all.Largest(); largest != nil {
		stats.Density = largest.Density
	}
	stats.FilteredNodes = filtered.NodeCount()
	stats.FilteredEdges = filtered.EdgeCount()
	stats.TotalWeight = filtered.TotalWeight()
	stats.AverageClustering = algorithms.AverageClusteringCoefficient(filtered)
	return filtered
}

// hubs names the HubCount nodes of g with the highest degree centrality.
func hubs[K comparable](g *graph.Graph[K], name func(K) string) []string {
	top := algorithms.TopNodes(g, algorithms.DegreeCentrality(g), HubCount)
	names := make([]string, 0, len(top))
	for _, n := range top {
		names = append(names, name(n.Node))
	}
	return names
}

func (r *run) recordGraph(name, stage string, nodes, edges int) {
	r.metrics.RecordGraph(name, stage, nodes, edges)
	r.logger.Info("graph size",
		logging.Graph(name),
		logging.String("graph_stage", stage),
		logging.Int("nodes", nodes),
		logging.Int("edges", edges),
	)
}

func (r *run) summarize() error {
	r.officerAttrs = summary.Officers(r.officers.Nodes(), r.index, r.resolver)
	r.companyAttrs = summary.Companies(r.companies.Nodes(), r.index, r.resolver)
	return nil
}

func (r *run) publish() error {
	if len(r.sinks) == 0 {
		return nil
	}

	m, err := export.ReadManifest(r.result.Manifest)
	if err != nil {
		return err
	}
	// never upload files that changed since they were written
	if err := m.Verify(r.cfg.Output.Dir); err != nil {
		return err
	}
	published := &sink.Run{ID: r.result.RunID, Dir: r.cfg.Output.Dir, Manifest: m}

	for _, s := range r.sinks {
		err := s.Publish(r.ctx, published)
		r.metrics.RecordPublish(s.Name(), err)
		if err != nil {
			return fmt.Errorf("sink %s: %w", s.Name(), err)
		}
		r.logger.Info("artifacts published", logging.Component(s.Name()))
		r.result.Published = append(r.result.Published, s.Name())
	}
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
