package server

import (
	"encoding/json"
	"errors"

	"github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"
)

const MaxNameLength = 100

// Reason codes are the only failure surface of the command protocol.
// Every rejected command resolves to exactly one of these.
type Reason string

const (
	ReasonAlreadyInGame     Reason = "already_in_game"
	ReasonCardNotPlayable   Reason = "card_not_playable"
	ReasonGameEmpty         Reason = "game_empty"
	ReasonGameFull          Reason = "game_full"
	ReasonGameNotFound      Reason = "game_not_found"
	ReasonGameNotStarted    Reason = "game_not_started"
	ReasonGameStarted       Reason = "game_started"
	ReasonNameInvalid       Reason = "name_invalid"
	ReasonNameTaken         Reason = "name_taken"
	ReasonNotInGame         Reason = "not_in_game"
	ReasonNotPlayerTurn     Reason = "not_player_turn"
	ReasonParams            Reason = "params"
	ReasonPlayerMissingCard Reason = "player_missing_card"
	ReasonPlayerNotHost     Reason = "player_not_host"
)

type ClientMessage struct {
	Cmd  string          `json:"cmd"`
	Seq  int64           `json:"seq,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ServerMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq,omitempty"`
	OK   bool        `json:"ok,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

func ackOK(seq int64, data interface{}) ServerMessage {
	return ServerMessage{Type: "ack", Seq: seq, OK: true, Data: data}
}

func ackFail(seq int64, reason Reason) ServerMessage {
	return ServerMessage{Type: "ack", Seq: seq, Data: map[string]Reason{"reason": reason}}
}

type CardDTO struct {
	Type   string  `json:"type"`
	Colour *string `json:"colour"`
}

type JoinPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c CardDTO) toEngine() (engine.Card, error) {
	t, err := parseCardType(c.Type)
	if err != nil {
		return engine.Card{}, err
	}
	card := engine.Card{Type: t}
	if c.Colour != nil {
		colour, err := parseColour(*c.Colour)
		if err != nil {
			return engine.Card{}, err
		}
		card.Colour = colour
	}
	return card, nil
}

func cardToDTO(c engine.Card) *CardDTO {
	dto := &CardDTO{Type: c.Type.String()}
	if c.Colour != engine.ColourNone {
		s := c.Colour.String()
		dto.Colour = &s
	}
	return dto
}

func parseCardType(s string) (engine.CardType, error) {
	switch s {
	case "skip":
		return engine.TypeSkip, nil
	case "reverse":
		return engine.TypeReverse, nil
	case "draw-2":
		return engine.TypeDrawTwo, nil
	case "wild":
		return engine.TypeWild, nil
	case "draw-4":
		return engine.TypeWildDrawFour, nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return engine.CardType(s[0] - '0'), nil
	}
	return 0, errors.New("invalid card type")
}

func parseColour(s string) (engine.Colour, error) {
	switch s {
	case "blue":
		return engine.ColourBlue, nil
	case "green":
		return engine.ColourGreen, nil
	case "red":
		return engine.ColourRed, nil
	case "yellow":
		return engine.ColourYellow, nil
	default:
		return engine.ColourNone, errors.New("invalid colour")
	}
}
