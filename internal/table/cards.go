package table

import (
	"encoding/json"
	"fmt"
)

type Suit string

type Rank int

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

const (
	Ace   Rank = 1
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) Known() bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	default:
		return false
	}
}

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Face is the visible side of a card as described by the server.
type Face struct {
	Rank  Rank
	Suit  Suit
	Image string
}

// Card is either hidden or face up. A hidden card carries no face at all, so
// its rank, suit and image cannot be read by accident.
type Card struct {
	face *Face
}

func HiddenCard() Card {
	return Card{}
}

func FaceUp(rank Rank, suit Suit, image string) Card {
	return Card{face: &Face{Rank: rank, Suit: suit, Image: image}}
}

func (c Card) Hidden() bool {
	return c.face == nil
}

func (c Card) Face() (Face, bool) {
	if c.face == nil {
		return Face{}, false
	}
	return *c.face, true
}

func (c Card) String() string {
	f, ok := c.Face()
	if !ok {
		return "hidden"
	}
	return fmt.Sprintf("%d-%s", f.Rank, f.Suit)
}

type cardJSON struct {
	Hidden bool   `json:"hidden,omitempty"`
	Rank   Rank   `json:"rank,omitempty"`
	Suit   Suit   `json:"suit,omitempty"`
	Image  string `json:"image,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	f, ok := c.Face()
	if !ok {
		return json.Marshal(cardJSON{Hidden: true})
	}
	return json.Marshal(cardJSON{Rank: f.Rank, Suit: f.Suit, Image: f.Image})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = HiddenCard()
		return nil
	}
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Hidden {
		*c = HiddenCard()
		return nil
	}
	*c = FaceUp(raw.Rank, raw.Suit, raw.Image)
	return nil
}
