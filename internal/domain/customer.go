package domain

type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NIC         string `json:"nic"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	NICFrontURL string `json:"nicFrontUrl,omitempty"`
	NICBackURL  string `json:"nicBackUrl,omitempty"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"createdAt"`
}
