package request

// CreateTownRequest is the request body for founding a new town
type CreateTownRequest struct {
	TownName string `json:"town_name"`
	HostName string `json:"host_name"`
}

// JoinTownRequest is the request body for joining an existing town
type JoinTownRequest struct {
	PlayerName string `json:"player_name"`
}
