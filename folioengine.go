// Package folioengine is a single-operator portfolio engine built with Go,
// Echo, and templ. All site content lives in one PortfolioData document; a
// Synchronizer keeps an in-memory snapshot, a durable local SQLite cache,
// and an eventually consistent remote document store in agreement without
// ever blocking request handling on network I/O.
//
// Users provide their own templ components via the ViewFuncs struct, and
// folioengine handles the handler logic, middleware, state synchronization,
// and the AI assistant endpoints.
package folioengine

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/sohan/folioengine/assist"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home           func(doc PortfolioData, theme string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(doc PortfolioData, remoteOK bool, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central folioengine application. It wires together the local
// store, synchronizer, remote store, assistant, handlers, middleware, and
// user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Sync   *Synchronizer
	Views  ViewFuncs

	remote       Remote
	assistant    *assist.Assistant
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new folioengine App with the given configuration and view
// functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, synchronizer, assistant, middleware, and
// routes, kicks off hydration, and starts the server. Hydration runs in the
// background so serving never waits on the remote store.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folioengine: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folioengine: init store: %w", err)
	}
	a.Store = store

	if a.remote == nil && a.Config.SupabaseURL != "" {
		a.remote = NewSupabaseStore(a.Config.SupabaseURL, a.Config.SupabaseKey)
	}

	syncer, err := NewSynchronizer(store, a.remote, a.Config.SyncDebounce)
	if err != nil {
		return fmt.Errorf("folioengine: init synchronizer: %w", err)
	}
	a.Sync = syncer

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.Sync.Hydrate(ctx)
	}()

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.GeminiAPIKey != "" {
		assistant, err := assist.New(context.Background(), a.Config.GeminiAPIKey, a.Config.GeminiModel)
		if err != nil {
			// The site works without the assistant; don't refuse to start.
			log.Printf("folioengine: init assistant: %v", err)
		} else {
			a.assistant = assistant
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Public site
	e.GET("/", a.handleHome)
	e.POST("/theme/", a.handleThemeToggle)
	e.POST("/api/contact/", a.handleContact)
	e.POST("/api/chat/", a.handleChat)

	// Admin surface
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	e.GET("/admin/api/data/", a.handleDataGet)
	e.PUT("/admin/api/data/", a.handleDataUpdate)
	e.POST("/admin/api/messages/:id/read/", a.handleMessageRead)
	e.DELETE("/admin/api/messages/:id/", a.handleMessageDelete)
	e.GET("/admin/api/status/", a.handleRemoteStatus)

	e.POST("/admin/api/assist/refine/", a.handleAssistRefine)
	e.POST("/admin/api/assist/reply/", a.handleAssistReply)
	e.POST("/admin/api/assist/suggest/", a.handleAssistSuggest)

	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. A scheduled-but-unfired remote push is
// abandoned here by design.
func (a *App) Close() error {
	if a.Sync != nil {
		a.Sync.Close()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folioengine: required environment variable %s is not set", key)
	}
	return v
}
