package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordMutation("update", "success")
	m.RecordMutation("update", "success")
	m.RecordTransition("editing", "submitting")
	m.RecordTransition("editing", "editing")
	m.RecordChat(nil, time.Second)
	m.RecordChat(errors.New("upstream"), time.Second)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.InDelta(t, 2, testutil.ToFloat64(m.speciesMutationsTotal.WithLabelValues("update", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.workflowTransitions.WithLabelValues("editing", "submitting")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.workflowTransitions.WithLabelValues("editing", "editing")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.chatRequestsTotal.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.editSessionsActive), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordMutation("delete", "error")
		m.RecordTransition("viewing", "editing")
		m.SessionOpened()
		m.SessionClosed()
		m.RecordChat(nil, 0)
	})
}

func TestMetrics_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
