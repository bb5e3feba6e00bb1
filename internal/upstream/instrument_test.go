package upstream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingCollector struct {
	endpoints []string
	failures  []bool
}

func (r *recordingCollector) UpstreamCall(endpoint string, _ time.Duration, failed bool) {
	r.endpoints = append(r.endpoints, endpoint)
	r.failures = append(r.failures, failed)
}

type fixedClient struct {
	Client

	balance int64
	err     error
}

func (f *fixedClient) MileageBalance(context.Context) (int64, error) {
	return f.balance, f.err
}

func TestInstrument(t *testing.T) {
	t.Run("records success", func(t *testing.T) {
		rec := &recordingCollector{}
		client := Instrument(&fixedClient{balance: 100}, rec)

		balance, err := client.MileageBalance(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, int64(100), balance)
		assert.Equal(t, []string{"mileage_balance"}, rec.endpoints)
		assert.Equal(t, []bool{false}, rec.failures)
	})

	t.Run("records failure", func(t *testing.T) {
		rec := &recordingCollector{}
		client := Instrument(&fixedClient{err: &Error{Status: 503}}, rec)

		_, err := client.MileageBalance(context.Background())
		assert.Error(t, err)
		assert.Equal(t, []bool{true}, rec.failures)
	})

	t.Run("nil recorder passes through", func(t *testing.T) {
		inner := &fixedClient{balance: 7}
		client := Instrument(inner, nil)
		balance, err := client.MileageBalance(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, int64(7), balance)
	})
}
