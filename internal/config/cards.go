package config

import "github.com/caarlos0/env/v11"

const DefaultCardBackURL = "https://i.pinimg.com/originals/ce/ac/76/ceac7651e78ef135370a8a236580201a.png"

type CardsConfig struct {
	BackURL     string `env:"CARD_BACK_URL" envDefault:"https://i.pinimg.com/originals/ce/ac/76/ceac7651e78ef135370a8a236580201a.png"`
	Artwork     bool   `env:"CARD_ARTWORK" envDefault:"true"`
	ArtworkBase string `env:"CARD_ARTWORK_BASE"`
}

func LoadCards() (CardsConfig, error) {
	var cfg CardsConfig
	err := env.Parse(&cfg)
	return cfg, err
}
