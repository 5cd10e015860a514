package config

import "os"

// defaultAPIBase is used for both backend bases when nothing is configured,
// matching a local backend running next to the frontend.
const defaultAPIBase = "http://localhost:8000/api"

type Config struct {
	Env  string
	Port string

	// BackendURL is the API base for calls issued by this server
	// (container-to-container; requests must not leave the internal network).
	BackendURL string
	// PublicAPIURL is the API base handed to the browser for calls it
	// issues itself (the session probe). Distinct from BackendURL because
	// the two sides resolve the backend over different networks.
	PublicAPIURL string

	Origin string // CORS for the JSON surface

	TemplateDir string
	StaticDir   string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		Env:          env("APP_ENV", "dev"),
		Port:         env("WEB_PORT", "3000"),
		BackendURL:   env("BACKEND_URL", env("NEXT_PUBLIC_API_URL", defaultAPIBase)),
		PublicAPIURL: env("NEXT_PUBLIC_API_URL", defaultAPIBase),
		Origin:       env("CORS_ORIGIN", "http://localhost:3000"),
		TemplateDir:  env("TEMPLATE_DIR", "web/templates"),
		StaticDir:    env("STATIC_DIR", "web/static"),
	}
}
