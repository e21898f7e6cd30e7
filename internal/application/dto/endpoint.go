package dto

import "medreminder/internal/domain/entity"

// EndpointKeys are the Web Push subscription keys.
type EndpointKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// RegisterEndpointRequest is the DTO for registering where reminders are delivered.
// Address is the push service URL, the LINE user id or the Telegram chat id.
type RegisterEndpointRequest struct {
	Kind    string       `json:"kind"`
	Address string       `json:"address"`
	Keys    EndpointKeys `json:"keys"`
}

// EndpointResponse is the DTO for the registered endpoint. Keys are never echoed.
type EndpointResponse struct {
	Kind    string `json:"kind"`
	Address string `json:"address"`
}

// ToEndpointResponse converts an entity.Endpoint to an EndpointResponse DTO.
func ToEndpointResponse(ep entity.Endpoint) EndpointResponse {
	return EndpointResponse{Kind: string(ep.Kind), Address: ep.Address}
}
