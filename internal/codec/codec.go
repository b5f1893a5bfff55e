// Package codec serializes battle state for storage and the wire.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/ericogr/chimera-battle/internal/game"
)

// EncodeState renders a battle state as JSON. Field names follow the
// BattleState tags so the same bytes can be served to clients.
func EncodeState(s game.BattleState) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, eris.Wrapf(err, "encode battle %s", s.BattleID)
	}
	return b, nil
}

// DecodeState parses bytes produced by EncodeState.
func DecodeState(b []byte) (game.BattleState, error) {
	var s game.BattleState
	if len(b) == 0 {
		return s, eris.New("empty battle snapshot")
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, eris.Wrap(err, "decode battle snapshot")
	}
	return s, nil
}

// Marshal is the JSON encoder used by the HTTP and stream layers.
func Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "marshal")
	}
	return b, nil
}

// Unmarshal decodes JSON into v.
func Unmarshal(b []byte, v interface{}) error {
	if err := json.Unmarshal(b, v); err != nil {
		return eris.Wrap(err, "unmarshal")
	}
	return nil
}
