package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Calculations.WithLabelValues("dutchpay").Inc()
	m.Calculations.WithLabelValues("dutchpay").Inc()
	m.RPCRequests.WithLabelValues("/calckit.v1.CalculatorService/Settle", "ok").Inc()
	m.SettlementSize.Observe(2)
	m.DevicesIssued.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calculations.WithLabelValues("dutchpay")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DevicesIssued))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["calckit_calculations_total"])
	assert.True(t, names["calckit_rpc_requests_total"])
	assert.True(t, names["calckit_settlement_transfers"])
}

func TestNewOnSeparateRegistries(t *testing.T) {
	// Each registry gets its own collectors; no duplicate registration panic
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
