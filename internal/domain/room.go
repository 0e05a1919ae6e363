package domain

import "time"

// RoomListing is a projection of external Room Service state at query
// time. It has no lifecycle of its own and is recomputed on every query.
type RoomListing struct {
	RoomID           string    `json:"roomId"`
	RoomName         RoomName  `json:"roomName"`
	HostName         string    `json:"hostName"`
	ParticipantCount int       `json:"participantCount"`
	CreatedAt        time.Time `json:"createdAt"`
}
