package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	roomIDPrefix = "game_"
	roomIDMin    = 1000
	roomIDMax    = 9999
)

type random interface {
	Intn(n int) int
}

// GenerateRoomID - generates the room identifier announced by the host, e.g. "game_4521".
func GenerateRoomID(rng random) string {
	return fmt.Sprintf("%s%d", roomIDPrefix, roomIDMin+rng.Intn(roomIDMax-roomIDMin+1))
}

// GenerateSessionID - generates a unique id for a local session.
func GenerateSessionID() string {
	return uuid.NewString()
}
