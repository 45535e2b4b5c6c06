package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-notify/internal/domain/model"
)

type stubSkin struct {
	err error
}

func (s stubSkin) Notify(context.Context, model.Weather) error { return s.err }
func (s stubSkin) Cancel(context.Context) error                { return s.err }

func TestInstrumentedSkinCountsCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollectors(reg)
	require.NoError(t, err)

	ok := c.Instrument("widget", stubSkin{})
	failing := c.Instrument("discord", stubSkin{err: errors.New("down")})

	require.NoError(t, ok.Notify(context.Background(), model.Weather{}))
	require.NoError(t, ok.Notify(context.Background(), model.Weather{}))
	require.NoError(t, ok.Cancel(context.Background()))
	require.Error(t, failing.Cancel(context.Background()))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.calls.WithLabelValues("widget", opNotify, resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("widget", opCancel, resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("discord", opCancel, resultError)))
	assert.Equal(t, 3, testutil.CollectAndCount(c.calls))
}

func TestNewCollectorsRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollectors(reg)
	require.NoError(t, err)
	_, err = NewCollectors(reg)
	assert.Error(t, err)
}

func TestInstrumentNilCollectors(t *testing.T) {
	var c *Collectors
	skin := stubSkin{}
	assert.Equal(t, skin, c.Instrument("widget", skin))
}
