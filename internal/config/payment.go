package config

// Payment задаёт курсы и комиссию, по которым считаются суммы к оплате.
// Значения фиксируются на момент создания сделки и дальше не меняются.
type Payment struct {
	TonRate       float64 `env:"PAYMENT_TON_RATE" envDefault:"0.053" validate:"gt=0"`
	UsdtRate      float64 `env:"PAYMENT_USDT_RATE" envDefault:"24.3" validate:"gt=0"`
	FeePercent    float64 `env:"PAYMENT_FEE_PERCENT" envDefault:"3" validate:"gte=0,lt=100"`
	DefaultWallet string  `env:"PAYMENT_DEFAULT_WALLET" envDefault:"UQAeQikkaB6Zz0hWF2IVjsMwK8Ldvtv4jYHPJ3KJDpzoWS1M" validate:"required"`
}
