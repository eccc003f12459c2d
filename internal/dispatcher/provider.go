package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/model"
)

// Provider delivers one inquiry notification.
type Provider interface {
	Name() string
	Ready() bool
	Acquire() bool
	Notify(ctx context.Context, env model.InquiryEnvelope) error
}

// HTTPProvider posts the envelope to a notification function endpoint.
type HTTPProvider struct {
	name   string
	url    string
	apiKey string
	client *http.Client
	br     *Breaker
}

var _ Provider = (*HTTPProvider)(nil)

func NewHTTPProvider(pc config.ProviderConfig) *HTTPProvider {
	timeoutMs := pc.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = 3000
	}

	failThreshold := pc.Breaker.FailThreshold
	if failThreshold <= 0 {
		failThreshold = 3
	}

	openForMs := pc.Breaker.OpenForMs
	if openForMs <= 0 {
		openForMs = 15000
	}

	return &HTTPProvider{
		name:   pc.Name,
		url:    pc.BaseURL + pc.Path,
		apiKey: pc.APIKey,
		client: &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:     NewBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

// FromConfig builds a provider for every enabled entry.
func FromConfig(pcs []config.ProviderConfig) []Provider {
	out := make([]Provider, 0, len(pcs))
	for _, pc := range pcs {
		if !pc.Enabled {
			continue
		}
		out = append(out, NewHTTPProvider(pc))
	}
	return out
}

func (p *HTTPProvider) Name() string  { return p.name }
func (p *HTTPProvider) Ready() bool   { return p.br.Ready() }
func (p *HTTPProvider) Acquire() bool { return p.br.Acquire() }

func (p *HTTPProvider) Notify(ctx context.Context, env model.InquiryEnvelope) error {
	if err := p.post(ctx, env); err != nil {
		p.br.OnFailure()
		return err
	}

	p.br.OnSuccess()

	return nil
}

type functionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (p *HTTPProvider) post(ctx context.Context, env model.InquiryEnvelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Apikey", p.apiKey)
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("provider=%s status=%d", p.name, res.StatusCode)
	}

	var out functionResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&out); err != nil {
		return fmt.Errorf("provider=%s decode: %w", p.name, err)
	}
	if !out.Success {
		return fmt.Errorf("provider=%s rejected: %s", p.name, out.Error)
	}

	return nil
}
