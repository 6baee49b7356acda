package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetrics_Record 测试指标记录
func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.SearchAttempt("peer")
	m.SearchAttempt("peer")
	m.GroupResolved(true)
	m.RosterSize(3)
	m.MessageSent(SendOK)
	m.MessageReceived()
	m.MessageDropped(DropNotForMe)
	m.DispatchDropped("peers")
	m.Envelope("out", "QUERY")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searchAttempts.WithLabelValues("peer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.groupsResolved.WithLabelValues("created")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rosterSize))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesDropped.WithLabelValues(DropNotForMe)))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

// TestMetrics_ReRegister 测试重复注册复用已有收集器
func TestMetrics_ReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := New(reg)
	require.NoError(t, err)
	m2, err := New(reg)
	require.NoError(t, err)

	m1.MessageReceived()
	m2.MessageReceived()
	assert.Equal(t, 2.0, testutil.ToFloat64(m2.messagesReceived))
}

// TestMetrics_NilSafe 测试 nil 接收者
func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SearchAttempt("group")
		m.GroupResolved(false)
		m.RosterSize(1)
		m.MessageSent(SendError)
		m.MessageReceived()
		m.MessageDropped(DropClosed)
		m.DispatchDropped("k")
		m.Envelope("in", "PIPE")
	})
}
