package config

type AppConfig struct {
	Client ClientConfig
	Web    WebConfig
	Cards  CardsConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	clientCfg, err := LoadClient()
	if err != nil {
		return AppConfig{}, err
	}
	webCfg, err := LoadWeb()
	if err != nil {
		return AppConfig{}, err
	}
	cardsCfg, err := LoadCards()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Client: clientCfg,
		Web:    webCfg,
		Cards:  cardsCfg,
		Log:    logCfg,
	}, nil
}
