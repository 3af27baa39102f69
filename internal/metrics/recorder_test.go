package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("run_hugo", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("run_hugo", ResultSuccess)
	r.IncBuildOutcome("success")
	r.SetPostsPublished(3)
	r.SetLiveReloadClients(1)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("run_hugo", time.Second)
	p.IncBuildOutcome("success")
	p.SetPostsPublished(1)
}

func TestPrometheusRecorderRegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.ObserveStageDuration("run_hugo", 250*time.Millisecond)
	p.ObserveBuildDuration(time.Second)
	p.IncStageResult("run_hugo", ResultSuccess)
	p.IncBuildOutcome("success")
	p.SetPostsPublished(7)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["blogforge_stage_duration_seconds"])
	require.True(t, names["blogforge_build_duration_seconds"])
	require.True(t, names["blogforge_stage_results_total"])
	require.True(t, names["blogforge_build_outcomes_total"])
	require.True(t, names["blogforge_posts_published"])
}
