package formhttp

import "time"

// Config holds the HTTP adapter settings.
type Config struct {
	// RedirectDelay is how long a datastar client waits on the success
	// message before it is sent to the summary page.
	RedirectDelay time.Duration `env:"FORM_REDIRECT_DELAY" envDefault:"2s"`

	SessionCapacity    int           `env:"FORM_SESSION_CAPACITY" envDefault:"10000"`
	SessionIdleTimeout time.Duration `env:"FORM_SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	VisitorCookie string `env:"FORM_VISITOR_COOKIE" envDefault:"visitor_id"`
	// CookieSecret signs the visitor cookie when set. At least 32 characters.
	CookieSecret string `env:"FORM_COOKIE_SECRET"`
	CookieSecure bool   `env:"FORM_COOKIE_SECURE" envDefault:"false"`
	// CookieMaxAge is in seconds; the default is one year.
	CookieMaxAge int `env:"FORM_COOKIE_MAX_AGE" envDefault:"31536000"`

	HealthTimeout time.Duration `env:"FORM_HEALTH_TIMEOUT" envDefault:"3s"`

	DatastarScript string `env:"FORM_DATASTAR_SCRIPT" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"`
	QRCodeSize     int    `env:"FORM_QR_SIZE" envDefault:"256"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		RedirectDelay:      2 * time.Second,
		SessionCapacity:    10000,
		SessionIdleTimeout: 30 * time.Minute,
		VisitorCookie:      "visitor_id",
		CookieMaxAge:       31536000,
		HealthTimeout:      3 * time.Second,
		DatastarScript:     "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js",
		QRCodeSize:         256,
	}
}
