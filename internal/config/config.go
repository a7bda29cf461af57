package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"joyeria.db"`
	AdminToken  string `env:"ADMIN_TOKEN"`

	MercadoPago MercadoPago `envPrefix:"MERCADOPAGO_"`
	Paypal      Paypal      `envPrefix:"PAYPAL_"`
}

// MercadoPago points at the create-preference / get-payment backend functions,
// not at the MercadoPago API itself.
type MercadoPago struct {
	FunctionURL string `env:"FUNCTION_URL"`
	Token       string `env:"TOKEN"`
}

// Paypal points at the create-order / capture-order backend functions.
type Paypal struct {
	FunctionURL string `env:"FUNCTION_URL"`
	Token       string `env:"TOKEN"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
