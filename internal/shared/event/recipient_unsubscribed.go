package event

const RecipientUnsubscribedDestination string = "recipient.unsubscribed"
const RecipientUnsubscribedConsumerCampaign string = "recipient_unsubscribed_campaign"

type RecipientUnsubscribedMessage struct {
	RecipientID int64 `json:"recipient_id"`
	// DeliveryID is the delivery whose link was followed, zero when unknown.
	DeliveryID int64 `json:"delivery_id"`
}
