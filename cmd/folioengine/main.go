// Command folioengine runs a portfolio site with the default views. All
// deployment-specific settings come from environment variables.
package main

import (
	"log"
	"strings"
	"time"

	folio "github.com/sohan/folioengine"
	"github.com/sohan/folioengine/views"
)

func main() {
	cfg := folio.SiteConfig{
		Name:        folio.EnvOr("SITE_NAME", "Portfolio"),
		URL:         strings.TrimSuffix(folio.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: folio.EnvOr("SITE_DESCRIPTION", ""),

		Addr:         folio.EnvOr("ADDR", ":3000"),
		DatabasePath: folio.EnvOr("DATABASE_PATH", "data/portfolio.db"),

		SupabaseURL: folio.EnvOr("SUPABASE_URL", ""),
		SupabaseKey: folio.EnvOr("SUPABASE_ANON_KEY", ""),

		GeminiAPIKey: folio.EnvOr("GEMINI_API_KEY", ""),
		GeminiModel:  folio.EnvOr("GEMINI_MODEL", ""),

		SessionSecret: folio.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(folio.EnvOr("COOKIE_SECURE", ""), "true"),

		SyncDebounce: syncDebounce(),
	}

	app := folio.New(cfg, views.Default())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func syncDebounce() time.Duration {
	v := folio.EnvOr("SYNC_DEBOUNCE", "")
	if v == "" {
		return 0 // use the engine default
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid SYNC_DEBOUNCE %q: %v", v, err)
	}
	return d
}
