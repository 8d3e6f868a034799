package config

type Bot struct {
	Token      string `env:"BOT_TOKEN,required"`
	Username   string `env:"BOT_USERNAME" envDefault:"tresure_gifts_bot"`
	SupportURL string `env:"BOT_SUPPORT_URL" envDefault:"https://t.me/tresure_support"`
}
