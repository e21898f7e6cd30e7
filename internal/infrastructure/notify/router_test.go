package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

func TestRouter_Notify(t *testing.T) {
	r := NewRouter(logger.NewNop())

	var got []entity.Notification
	r.Register(constant.EndpointLine, SenderFunc(func(_ context.Context, ep entity.Endpoint, n entity.Notification) error {
		assert.Equal(t, "U1", ep.Address)
		got = append(got, n)
		return nil
	}))
	require.True(t, r.Supports(constant.EndpointLine))
	require.False(t, r.Supports(constant.EndpointTelegram))

	n := entity.Notification{ConfirmationID: "c1", Kind: constant.KindDue}
	require.NoError(t, r.Notify(context.Background(), entity.Endpoint{Kind: constant.EndpointLine, Address: "U1"}, n))
	assert.Equal(t, []entity.Notification{n}, got)
}

func TestRouter_UnknownKind(t *testing.T) {
	r := NewRouter(logger.NewNop())

	err := r.Notify(context.Background(), entity.Endpoint{Kind: constant.EndpointTelegram, Address: "1"}, entity.Notification{})
	assert.True(t, errors.Is(err, appErrors.ErrDispatch))
}

func TestRouter_WrapsSenderErrors(t *testing.T) {
	r := NewRouter(logger.NewNop())
	r.Register(constant.EndpointWebPush, SenderFunc(func(context.Context, entity.Endpoint, entity.Notification) error {
		return appErrors.ErrEndpointExpired
	}))

	err := r.Notify(context.Background(), entity.Endpoint{Kind: constant.EndpointWebPush, Address: "https://push"}, entity.Notification{})
	assert.True(t, errors.Is(err, appErrors.ErrDispatch))
	assert.True(t, errors.Is(err, appErrors.ErrEndpointExpired))
}
