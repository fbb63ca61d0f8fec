package messages

// PlayerIntent is sent from client to server each frame with the player's
// decoded movement intents. The server consumes intents only; raw input-device
// handling stays on the client.
type PlayerIntent struct {
	Sequence   uint32  // Incrementing ID for reconciliation
	Turn       float64 // Yaw delta in radians for this frame
	Jump       bool
	Dash       bool
	Accelerate bool
	Timestamp  int64 // Client timestamp (Unix ms)
}
