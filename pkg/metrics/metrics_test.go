package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { MustRegister(reg) })
	assert.Panics(t, func() { MustRegister(reg) }, "second registration collides")
}

func TestHelpers(t *testing.T) {
	before := testutil.ToFloat64(DigestBuilds.WithLabelValues("created"))
	ObserveDigestBuild("created", time.Now().Add(-time.Second))
	assert.InDelta(t, before+1, testutil.ToFloat64(DigestBuilds.WithLabelValues("created")), 1e-9)

	before = testutil.ToFloat64(Enrichments.WithLabelValues("translation", "done"))
	IncEnrichment("translation", "done")
	assert.InDelta(t, before+1, testutil.ToFloat64(Enrichments.WithLabelValues("translation", "done")), 1e-9)

	before = testutil.ToFloat64(AnalyzedItems.WithLabelValues("true"))
	IncAnalyzed(true, 3)
	assert.InDelta(t, before+3, testutil.ToFloat64(AnalyzedItems.WithLabelValues("true")), 1e-9)

	before = testutil.ToFloat64(OracleChunks.WithLabelValues("parse-error"))
	IncOracleChunk("parse-error")
	assert.InDelta(t, before+1, testutil.ToFloat64(OracleChunks.WithLabelValues("parse-error")), 1e-9)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)
	IncEnrichment("screenshot", "failed")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `postdigest_enrichments_total{kind="screenshot",outcome="failed"}`)
}
