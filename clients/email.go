package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

const emailEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailClient triggers a hosted templated email. Email config is optional:
// a client built without credentials accepts sends and drops them, so flows
// succeed in a degraded mode instead of failing.
type EmailClient struct {
	serviceID  string
	publicKey  string
	endpoint   string
	httpClient *http.Client
}

func NewEmailClient(serviceID, publicKey string) EmailClient {
	return EmailClient{
		serviceID: serviceID,
		publicKey: publicKey,
		endpoint:  emailEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewEmailClientWithEndpoint exists for tests.
func NewEmailClientWithEndpoint(serviceID, publicKey, endpoint string) EmailClient {
	c := NewEmailClient(serviceID, publicKey)
	c.endpoint = endpoint
	return c
}

func (c EmailClient) Enabled() bool {
	return c.serviceID != "" && c.publicKey != ""
}

func (c EmailClient) SendTemplate(ctx context.Context, templateID string, params map[string]string) error {
	if !c.Enabled() {
		log.FromContext(ctx).Info("email sending disabled, skipping template " + templateID)
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"service_id":      c.serviceID,
		"template_id":     templateID,
		"user_id":         c.publicKey,
		"template_params": params,
	})
	if err != nil {
		return fmt.Errorf("marshalling email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending email request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	return nil
}
