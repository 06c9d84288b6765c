package service

import (
	"bytes"
	"encoding/json"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

// worldsEqual compares the serialized forms, which is what a store keeps.
func worldsEqual(a, b game.World) (bool, error) {
	ra, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ra, rb), nil
}
