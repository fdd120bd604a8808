package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(""))
	assert.Equal(t, "not_found", Result("not_found"))
}

func TestLedgerCorrectionsCounter(t *testing.T) {
	before := testutil.ToFloat64(LedgerCorrectionsTotal.WithLabelValues("clamp"))
	LedgerCorrectionsTotal.WithLabelValues("clamp").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(LedgerCorrectionsTotal.WithLabelValues("clamp")))
}
