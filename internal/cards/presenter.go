package cards

import (
	"strconv"
	"strings"

	"kambling/internal/config"
	"kambling/internal/table"

	"github.com/pterm/pterm"
)

type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
)

func ParseSize(v string) Size {
	if strings.EqualFold(strings.TrimSpace(v), string(SizeSmall)) {
		return SizeSmall
	}
	return SizeMedium
}

type Kind string

const (
	KindBack    Kind = "back"
	KindArtwork Kind = "artwork"
	KindImage   Kind = "image"
)

type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Presentation is everything a renderer needs to draw one card. Asset is
// never empty.
type Presentation struct {
	Kind      Kind   `json:"kind"`
	Size      Size   `json:"size"`
	Asset     string `json:"asset"`
	Alt       string `json:"alt"`
	RankLabel string `json:"rank_label,omitempty"`
	SuitGlyph string `json:"suit_glyph,omitempty"`
	Color     Color  `json:"color,omitempty"`
}

var suitGlyphs = map[table.Suit]string{
	table.Hearts:   "♥",
	table.Diamonds: "♦",
	table.Clubs:    "♣",
	table.Spades:   "♠",
}

// DefaultArtwork is the face artwork shipped with the table page.
var DefaultArtwork = map[table.Rank]string{
	table.Ace:   "/Taylor.png",
	table.King:  "/Dylan.png",
	table.Queen: "/Alex.png",
	table.Jack:  "/Stew.png",
	table.Ten:   "/Sam.png",
}

type Presenter struct {
	back    string
	artwork map[table.Rank]string
}

func NewPresenter(cfg config.CardsConfig) *Presenter {
	p := &Presenter{back: cfg.BackURL, artwork: map[table.Rank]string{}}
	if p.back == "" {
		p.back = config.DefaultCardBackURL
	}
	if cfg.Artwork {
		base := strings.TrimRight(cfg.ArtworkBase, "/")
		for rank, path := range DefaultArtwork {
			p.artwork[rank] = base + path
		}
	}
	return p
}

func (p *Presenter) Back(size Size) Presentation {
	return Presentation{Kind: KindBack, Size: size, Asset: p.back, Alt: "Card back"}
}

func (p *Presenter) Present(c table.Card, size Size) Presentation {
	face, ok := c.Face()
	if !ok {
		return p.Back(size)
	}
	out := Presentation{
		Size:      size,
		RankLabel: RankLabel(face.Rank),
		SuitGlyph: suitGlyphs[face.Suit],
		Color:     ColorBlack,
	}
	if face.Suit.Red() {
		out.Color = ColorRed
	}
	out.Alt = "Card " + out.RankLabel + out.SuitGlyph
	switch {
	case p.artwork[face.Rank] != "":
		out.Kind = KindArtwork
		out.Asset = p.artwork[face.Rank]
	case face.Image != "":
		out.Kind = KindImage
		out.Asset = face.Image
	default:
		out.Kind = KindBack
		out.Asset = p.back
	}
	return out
}

func (p *Presenter) PresentAll(cs []table.Card, size Size) []Presentation {
	out := make([]Presentation, 0, len(cs))
	for _, c := range cs {
		out = append(out, p.Present(c, size))
	}
	return out
}

func RankLabel(r table.Rank) string {
	switch r {
	case table.Ace:
		return "A"
	case table.Jack:
		return "J"
	case table.Queen:
		return "Q"
	case table.King:
		return "K"
	}
	if !r.Valid() {
		return "?"
	}
	return strconv.Itoa(int(r))
}

// Label is the plain terminal form of the card, "##" for a face-down card.
func (pr Presentation) Label() string {
	if pr.RankLabel == "" {
		return "##"
	}
	return pr.RankLabel + pr.SuitGlyph
}

func (pr Presentation) Text() string {
	label := " " + pr.Label() + " "
	if pr.RankLabel == "" {
		return pterm.NewStyle(pterm.FgWhite, pterm.BgBlue).Sprint(label)
	}
	if pr.Color == ColorRed {
		return pterm.NewStyle(pterm.FgRed, pterm.BgWhite, pterm.Bold).Sprint(label)
	}
	return pterm.NewStyle(pterm.FgBlack, pterm.BgWhite, pterm.Bold).Sprint(label)
}
