package folioengine

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	remoteOK, _ := a.Sync.ProbeRemote(c.Request().Context())
	return Render(c, a.Views.AdminDashboard(a.Sync.Snapshot(), remoteOK, CsrfToken(c)))
}

// handleAdminLogin compares the submitted pair against the document's
// stored credentials (or the default pair when unset). Plaintext comparison
// against plaintext storage — a deliberate single-operator gate carried over
// from the original design, not a hardened auth system.
func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	creds := a.Sync.Snapshot().Credentials()
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
	if userOK && passOK {
		if err := setAdminSession(c, username); err != nil {
			return err
		}
		a.Sync.Login(username)
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	a.Sync.Logout()
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleDataGet returns the full current document, inbox and credentials
// included, for the admin editor.
func (a *App) handleDataGet(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, a.Sync.Snapshot())
}

// handleDataUpdate applies a partial document update. Non-nil top-level
// fields replace the stored ones wholesale; contents are not validated.
func (a *App) handleDataUpdate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var patch DocumentPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	a.Sync.UpdateData(patch)
	return c.JSON(http.StatusOK, a.Sync.Snapshot())
}

func (a *App) handleMessageRead(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	a.Sync.MarkMessageRead(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleMessageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	a.Sync.DeleteMessage(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// handleRemoteStatus feeds the informational sync banner. Its result never
// gates any data operation.
func (a *App) handleRemoteStatus(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	exists, err := a.Sync.ProbeRemote(c.Request().Context())
	status := map[string]any{"remote": exists}
	if err != nil {
		status["error"] = err.Error()
	}
	if localErr := a.Sync.LocalHealth(); localErr != nil {
		status["localError"] = localErr.Error()
	}
	return c.JSON(http.StatusOK, status)
}

type refineRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind"` // "bio" or "about"
}

// handleAssistRefine returns a suggested rewrite of profile text. The
// suggestion is never written to the document here; the operator approves it
// and saves through the normal data update path.
func (a *App) handleAssistRefine(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if a.assistant == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "assistant is not configured"})
	}
	var req refineRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	if req.Kind != "about" {
		req.Kind = "bio"
	}
	text, err := a.assistant.RefineProfileText(c.Request().Context(), req.Text, req.Kind)
	if err != nil {
		c.Logger().Errorf("assistant refine failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "assistant is unavailable right now"})
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

type replyRequest struct {
	MessageID string `json:"messageId"`
}

// handleAssistReply drafts an email reply to an inbox message.
func (a *App) handleAssistReply(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if a.assistant == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "assistant is not configured"})
	}
	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	doc := a.Sync.Snapshot()
	var msg *Message
	for i := range doc.Messages {
		if doc.Messages[i].ID == req.MessageID {
			msg = &doc.Messages[i]
			break
		}
	}
	if msg == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "message not found"})
	}

	draft, err := a.assistant.DraftReply(c.Request().Context(), msg.Message, msg.Name, doc.Profile.Name, doc.Profile.Designation)
	if err != nil {
		c.Logger().Errorf("assistant reply failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "assistant is unavailable right now"})
	}
	return c.JSON(http.StatusOK, map[string]string{"draft": draft})
}

type suggestRequest struct {
	Title string `json:"title"`
}

// handleAssistSuggest proposes a project description and tech stack from a
// title.
func (a *App) handleAssistSuggest(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if a.assistant == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "assistant is not configured"})
	}
	var req suggestRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	suggestion, err := a.assistant.SuggestProject(c.Request().Context(), req.Title)
	if err != nil {
		c.Logger().Errorf("assistant suggest failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "assistant is unavailable right now"})
	}
	return c.JSON(http.StatusOK, suggestion)
}
