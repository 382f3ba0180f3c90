package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"petalcart.db"`

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
	// disables callback signature verification, local sandboxes only
	SkipVerify bool `env:"SKIP_VERIFY" envDefault:"false"`
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

// Configured reports whether both gateway credentials are present.
func (r Razorpay) Configured() bool {
	return r.KeyID != "" && r.KeySecret != ""
}
