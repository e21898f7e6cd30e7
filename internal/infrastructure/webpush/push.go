package webpush

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
)

const defaultTTL = 3600

// Payload is the JSON the service worker receives.
type Payload struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	ConfirmationID string `json:"confirmation_id"`
	Kind           string `json:"kind"`
	Tag            string `json:"tag,omitempty"`
}

// Service sends Web Push notifications signed with a VAPID key pair.
type Service struct {
	publicKey  string
	privateKey string
	subscriber string
	client     *http.Client
}

// NewService creates a push service. client may be nil.
func NewService(publicKey, privateKey, subscriber string, client *http.Client) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		client:     client,
	}
}

// VAPIDPublicKey returns the key browsers subscribe with.
func (s *Service) VAPIDPublicKey() string {
	return s.publicKey
}

// Notify pushes n to the subscription described by endpoint. A 404 or 410 from
// the push service means the subscription is gone and yields ErrEndpointExpired.
func (s *Service) Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error {
	data, err := json.Marshal(Payload{
		Title:          n.Title(),
		Body:           n.Body(),
		ConfirmationID: n.ConfirmationID,
		Kind:           string(n.Kind),
		Tag:            n.ConfirmationID,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, data, &webpush.Subscription{
		Endpoint: endpoint.Address,
		Keys: webpush.Keys{
			P256dh: endpoint.P256dh,
			Auth:   endpoint.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		Subscriber:      s.subscriber,
		TTL:             defaultTTL,
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: push service returned %d", appErrors.ErrEndpointExpired, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

// GenerateVAPIDKeys returns a fresh base64url-encoded key pair.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
	if err != nil {
		return "", "", fmt.Errorf("generate VAPID keys: %w", err)
	}
	return publicKey, privateKey, nil
}
