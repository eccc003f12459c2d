package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name  string
	ready bool
	err   error
	calls int
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Ready() bool   { return f.ready }
func (f *fakeProvider) Acquire() bool { return f.ready }
func (f *fakeProvider) Notify(context.Context, model.InquiryEnvelope) error {
	f.calls++
	return f.err
}

func TestDispatcherRoundRobin(t *testing.T) {
	a := &fakeProvider{name: "a", ready: true}
	b := &fakeProvider{name: "b", ready: true}
	d := NewDispatcher([]Provider{a, b}, 3)

	for i := 0; i < 4; i++ {
		require.NoError(t, d.Notify(context.Background(), model.InquiryEnvelope{ID: "x"}))
	}
	assert.Equal(t, 2, a.calls)
	assert.Equal(t, 2, b.calls)
}

func TestDispatcherRetriesThenFails(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeProvider{name: "a", ready: true, err: boom}
	d := NewDispatcher([]Provider{a}, 3)

	err := d.Notify(context.Background(), model.InquiryEnvelope{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, a.calls)
}

func TestDispatcherNoHealthy(t *testing.T) {
	d := NewDispatcher([]Provider{&fakeProvider{}}, 3)
	assert.ErrorIs(t, d.Notify(context.Background(), model.InquiryEnvelope{}), ErrNoHealthy)

	d = NewDispatcher(nil, 0)
	assert.ErrorIs(t, d.Notify(context.Background(), model.InquiryEnvelope{}), ErrNoHealthy)
}

func TestHTTPProviderPostsEnvelope(t *testing.T) {
	var got model.InquiryEnvelope
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Apikey")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"inquiry_id":"` + got.ID + `"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.ProviderConfig{
		Name: "edge", BaseURL: srv.URL, Path: "/functions/v1/send-inquiry-confirmation", APIKey: "k1",
	})
	env := model.InquiryEnvelope{ID: "01J", ClientName: "Amina", ClientEmail: "amina@example.com"}
	require.NoError(t, p.Notify(context.Background(), env))
	assert.Equal(t, env, got)
	assert.Equal(t, "k1", key)
}

func TestHTTPProviderFailuresTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"bad"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.ProviderConfig{
		Name: "edge", BaseURL: srv.URL, Breaker: config.BreakerConfig{FailThreshold: 2, OpenForMs: 60000},
	})
	d := NewDispatcher([]Provider{p}, 5)

	err := d.Notify(context.Background(), model.InquiryEnvelope{ID: "1"})
	assert.ErrorIs(t, err, ErrNoHealthy)
	assert.Equal(t, int32(2), hits.Load())
	assert.False(t, p.Ready())
}

func TestHTTPProviderRejectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"nope"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.ProviderConfig{Name: "edge", BaseURL: srv.URL})
	err := p.Notify(context.Background(), model.InquiryEnvelope{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestFromConfigSkipsDisabled(t *testing.T) {
	ps := FromConfig([]config.ProviderConfig{{Name: "a", Enabled: true}, {Name: "b"}})
	require.Len(t, ps, 1)
	assert.Equal(t, "a", ps[0].Name())
}
