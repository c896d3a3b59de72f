package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
)

// Webhook is the interface for the content generation endpoint. The call is
// fire-and-forget: a 2xx acknowledges receipt, the result arrives later as a
// Firestore document keyed by the request ID.
type Webhook interface {
	Dispatch(ctx context.Context, req *model.ContentRequest) error
}

// webhookClient implements Webhook over HTTP
type webhookClient struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates a new webhook client
func NewWebhook(url string) Webhook {
	return &webhookClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *webhookClient) Dispatch(ctx context.Context, req *model.ContentRequest) error {
	if w.url == "" {
		return model.ErrWebhookNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal content request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create webhook request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return goerr.Wrap(model.ErrWebhookUnreachable, "failed to send webhook request",
			goerr.V("url", w.url),
			goerr.V("cause", err.Error()))
	}
	defer resp.Body.Close()

	// Response body is ignored on success (fire-and-forget)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return goerr.Wrap(model.ErrWebhookRejected, "webhook returned non-2xx status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}

	return nil
}
