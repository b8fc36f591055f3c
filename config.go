package folioengine

import "time"

// SiteConfig holds all configuration for a folioengine site.
type SiteConfig struct {
	Name        string // Site name shown when the document has none yet
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Fallback meta description

	Addr         string // Listen address (default ":3000")
	DatabasePath string // Local cache SQLite path (default "data/portfolio.db")

	SupabaseURL string // Remote document store project URL (optional)
	SupabaseKey string // Remote document store anon key

	GeminiAPIKey string // AI assistant key; assistant endpoints 503 when empty
	GeminiModel  string // Model name (default "gemini-2.5-flash")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	SyncDebounce time.Duration // Quiet window before a remote push (default 1s)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.5-flash"
	}
	if c.SyncDebounce == 0 {
		c.SyncDebounce = DefaultDebounce
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithRemote overrides the remote document store. Handy for tests and for
// backends other than Supabase.
func WithRemote(r Remote) Option {
	return func(a *App) {
		a.remote = r
	}
}
