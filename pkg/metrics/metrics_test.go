package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.FilesLoadedTotal == nil {
		t.Error("FilesLoadedTotal not initialized")
	}
	if r.RecordsRejectedTotal == nil {
		t.Error("RecordsRejectedTotal not initialized")
	}
	if r.GraphNodes == nil || r.GraphEdges == nil {
		t.Error("graph gauges not initialized")
	}
	if r.StageDuration == nil {
		t.Error("StageDuration not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordLoad(3, 10)
	r.RecordLoad(1, 2)

	if got := counterValue(t, r.FilesLoadedTotal); got != 4 {
		t.Errorf("Files counter = %v, want 4", got)
	}
	if got := counterValue(t, r.RecordsLoadedTotal); got != 12 {
		t.Errorf("Records counter = %v, want 12", got)
	}
}

func TestRecordRejected(t *testing.T) {
	r := NewRegistry()

	r.RecordRejected("empty corp id", 2)
	r.RecordRejected("empty officer identity", 1)
	r.RecordRejected("empty corp id", 1)

	emptyCorp, err := r.RecordsRejectedTotal.GetMetricWithLabelValues("empty corp id")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, emptyCorp); got != 3 {
		t.Errorf("empty corp id counter = %v, want 3", got)
	}

	emptyIdentity, _ := r.RecordsRejectedTotal.GetMetricWithLabelValues("empty officer identity")
	if got := counterValue(t, emptyIdentity); got != 1 {
		t.Errorf("empty identity counter = %v, want 1", got)
	}
}

func TestRecordGraph(t *testing.T) {
	r := NewRegistry()

	r.RecordGraph(GraphOfficers, StageProjected, 10, 20)
	r.RecordGraph(GraphOfficers, StageFiltered, 8, 15)
	r.RecordGraph(GraphOfficers, StageFiltered, 7, 12)

	projected, _ := r.GraphNodes.GetMetricWithLabelValues(GraphOfficers, StageProjected)
	if got := gaugeValue(t, projected); got != 10 {
		t.Errorf("projected nodes = %v, want 10", got)
	}

	// Gauges keep the last value
	filtered, _ := r.GraphEdges.GetMetricWithLabelValues(GraphOfficers, StageFiltered)
	if got := gaugeValue(t, filtered); got != 12 {
		t.Errorf("filtered edges = %v, want 12", got)
	}
}

func TestRecordStage(t *testing.T) {
	r := NewRegistry()

	r.RecordStage("load", 1500*time.Millisecond)

	gauge, _ := r.StageDuration.GetMetricWithLabelValues("load")
	if got := gaugeValue(t, gauge); got != 1.5 {
		t.Errorf("stage duration = %v, want 1.5", got)
	}
}

func TestRecordArtifactAndPublish(t *testing.T) {
	r := NewRegistry()

	r.RecordArtifact(100)
	r.RecordArtifact(50)
	r.RecordPublish("s3", nil)
	r.RecordPublish("s3", errors.New("boom"))
	r.RecordPublish("s3", nil)

	if got := counterValue(t, r.ArtifactsWrittenTotal); got != 2 {
		t.Errorf("artifacts = %v, want 2", got)
	}
	if got := counterValue(t, r.ArtifactBytesTotal); got != 150 {
		t.Errorf("bytes = %v, want 150", got)
	}

	ok, _ := r.PublishOperationsTotal.GetMetricWithLabelValues("s3", "success")
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("success = %v, want 2", got)
	}
	failed, _ := r.PublishOperationsTotal.GetMetricWithLabelValues("s3", "error")
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
}

func TestSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if got := gaugeValue(t, r.MemoryAllocBytes); got <= 0 {
		t.Errorf("memory alloc = %v, want > 0", got)
	}
}

func TestRegistryGather(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(GraphCompanies, StageFiltered, 1, 1)

	metrics, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	expectedMetrics := []string{
		"leaknet_files_loaded_total",
		"leaknet_records_loaded_total",
		"leaknet_graph_nodes",
		"leaknet_graph_edges",
	}
	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordRejected("empty corp id", 1)
	r.RecordGraph(GraphOfficers, StageFiltered, 1, 1)
	r.RecordStage("load", time.Second)
	r.RecordPublish("postgres", nil)

	metrics, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, m := range metrics {
		if name := m.GetName(); !strings.HasPrefix(name, "leaknet_") {
			t.Errorf("Metric %s does not have leaknet_ prefix", name)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordLoad(2, 5)
	r.RecordGraph(GraphOfficers, StageFiltered, 4, 3)

	path := filepath.Join(t.TempDir(), "leaknet.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"leaknet_files_loaded_total 2",
		"leaknet_records_loaded_total 5",
		`leaknet_graph_nodes{graph="officers",stage="filtered"} 4`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func BenchmarkRecordGraph(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordGraph(GraphOfficers, StageProjected, i, i)
	}
}
