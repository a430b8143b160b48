package doctors

// DoctorAgent is one AI specialist persona a user can consult with. The
// agent prompt seeds the voice conversation; premium personas require an
// active subscription.
type DoctorAgent struct {
	ID                   int    `json:"id"`
	Specialist           string `json:"specialist"`
	Description          string `json:"description"`
	Image                string `json:"image"`
	AgentPrompt          string `json:"agentPrompt"`
	VoiceID              string `json:"voiceId"`
	SubscriptionRequired bool   `json:"subscriptionRequired"`
}
