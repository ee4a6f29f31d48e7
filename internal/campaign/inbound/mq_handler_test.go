package inbound

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/campaign/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/messaging"
)

type rawMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m rawMessage) Body() []byte                { return m.body }
func (m rawMessage) Headers() []messaging.Header { return m.headers }
func (rawMessage) Topic() string                 { return "recipient.unsubscribed" }
func (rawMessage) Ack(context.Context) error     { return nil }
func (rawMessage) Nack(context.Context) error    { return nil }

type deactivator struct {
	ids []int64
	cid string
	err error
}

func (d *deactivator) DeactivateRecipient(ctx context.Context, in usecase.DeactivateRecipientInput) error {
	d.ids = append(d.ids, in.ID)
	d.cid = instrument.GetCorrelationID(ctx)
	return d.err
}

func TestMQHandler_RecipientUnsubscribed(t *testing.T) {
	d := &deactivator{}
	h := &MQHandler{uc: d, uuid: staticID{}, ins: instrument.NewNoop()}

	err := h.RecipientUnsubscribed(context.Background(), rawMessage{
		body:    []byte(`{"recipient_id":12,"delivery_id":34}`),
		headers: []messaging.Header{{Key: "cID", Value: []byte("abc")}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, d.ids)
	assert.Equal(t, "abc", d.cid)
}

func TestMQHandler_RecipientUnsubscribed_BadBody(t *testing.T) {
	d := &deactivator{}
	h := &MQHandler{uc: d, uuid: staticID{}, ins: instrument.NewNoop()}

	require.NoError(t, h.RecipientUnsubscribed(context.Background(), rawMessage{body: []byte(`{`)}))
	require.NoError(t, h.RecipientUnsubscribed(context.Background(), rawMessage{body: []byte(`{}`)}))
	assert.Empty(t, d.ids)
}

func TestMQHandler_RecipientUnsubscribed_Retry(t *testing.T) {
	d := &deactivator{err: errors.New("db down")}
	h := &MQHandler{uc: d, uuid: staticID{}, ins: instrument.NewNoop()}

	err := h.RecipientUnsubscribed(context.Background(), rawMessage{body: []byte(`{"recipient_id":12}`)})
	assert.Error(t, err)
	assert.Equal(t, "cid", d.cid)
}
