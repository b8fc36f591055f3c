package folioengine

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// PublicView projects a document for visitor rendering: unpublished projects
// and testimonials and disabled services are removed, and the inbox,
// analytics, and credentials are stripped entirely.
func PublicView(doc PortfolioData) PortfolioData {
	out := doc.Clone()

	projects := out.Projects[:0]
	for _, p := range out.Projects {
		if p.Published {
			projects = append(projects, p)
		}
	}
	out.Projects = projects

	services := out.Services[:0]
	for _, s := range out.Services {
		if s.Enabled {
			services = append(services, s)
		}
	}
	out.Services = services

	testimonials := out.Testimonials[:0]
	for _, t := range out.Testimonials {
		if t.Published {
			testimonials = append(testimonials, t)
		}
	}
	out.Testimonials = testimonials

	out.Messages = nil
	out.Analytics = Analytics{}
	out.AdminCredentials = nil
	return out
}

// handleHome serves the portfolio page and counts the visit once per
// browser session.
func (a *App) handleHome(c echo.Context) error {
	a.Sync.IncrementViews(a.visitorSessionID(c))
	doc := PublicView(a.Sync.Snapshot())
	return Render(c, a.Views.Home(doc, a.Store.Theme()))
}

func (a *App) handleThemeToggle(c echo.Context) error {
	next := "dark"
	if a.Store.Theme() == "dark" {
		next = "light"
	}
	if err := a.Store.SetTheme(next); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"theme": next})
}

// contactRequest is the visitor contact form payload. This is the one
// untrusted write path into the document, so it gets bounded here.
type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

const (
	maxContactField = 200
	maxContactBody  = 5000
)

func (r *contactRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return fmt.Errorf("name, email and message are required")
	}
	if len(r.Name) > maxContactField || len(r.Email) > maxContactField || len(r.Subject) > maxContactField {
		return fmt.Errorf("field too long")
	}
	if len(r.Message) > maxContactBody {
		return fmt.Errorf("message too long")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func (a *App) handleContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	msg := a.Sync.AddMessage(req.Name, req.Email, req.Subject, req.Message)
	return c.JSON(http.StatusCreated, map[string]string{"id": msg.ID})
}

// chatRequest is a visitor question for the AI assistant.
type chatRequest struct {
	Question string `json:"question"`
}

func (a *App) handleChat(c echo.Context) error {
	if a.assistant == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "assistant is not configured"})
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" || len(req.Question) > 1000 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question must be 1-1000 characters"})
	}

	doc := a.Sync.Snapshot()
	answer, err := a.assistant.VisitorAnswer(c.Request().Context(), req.Question, assistantContext(doc))
	if err != nil {
		c.Logger().Errorf("assistant answer failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "assistant is unavailable right now"})
	}
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

// assistantContext flattens the portfolio into the grounding text handed to
// the assistant. Messages and credentials never appear here.
func assistantContext(doc PortfolioData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", doc.Profile.Name)
	fmt.Fprintf(&b, "Role: %s\n", doc.Profile.Designation)
	fmt.Fprintf(&b, "Bio: %s\n", doc.Profile.Bio)

	names := make([]string, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		names = append(names, s.Name)
	}
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(names, ", "))

	projects := make([]string, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		if p.Published {
			projects = append(projects, p.Title+": "+p.Description)
		}
	}
	fmt.Fprintf(&b, "Projects: %s\n", strings.Join(projects, "; "))

	roles := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		roles = append(roles, e.Role+" at "+e.Company)
	}
	fmt.Fprintf(&b, "Experience: %s\n", strings.Join(roles, ", "))
	return b.String()
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap emits the single-page sitemap. The site is one document, so
// there is exactly one URL.
func (a *App) handleSitemap(c echo.Context) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: a.Config.URL + "/", LastMod: time.Now().UTC().Format("2006-01-02")},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// Render writes a portfolio view as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a portfolio view with an explicit status code, for the
// 404/500 pages.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
