package event

const CampaignActivatedDestination string = "campaign.activated"
const CampaignActivatedConsumerDelivery string = "campaign_activated_delivery"

type CampaignActivatedMessage struct {
	CampaignID int64  `json:"campaign_id"`
	Owner      string `json:"owner"`
}
