package folioengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DocumentKey is the fixed id of the single portfolio row in the remote
// store. The remote store holds exactly one document.
const DocumentKey = "main"

// Remote is the opaque upsert/fetch contract for the remote document store.
type Remote interface {
	// Upsert writes the full document snapshot under DocumentKey.
	Upsert(ctx context.Context, doc PortfolioData, updatedAt time.Time) error
	// Fetch reads the document. found is false when the store holds no
	// document yet; that is not an error.
	Fetch(ctx context.Context) (doc PortfolioData, found bool, err error)
	// Probe reports whether the backing table exists. Used only for the
	// diagnostic banner; never gates data operations.
	Probe(ctx context.Context) (exists bool, err error)
}

// ErrTableMissing classifies "backing table not provisioned" remote errors.
// The synchronizer treats these as soft and falls back silently.
var ErrTableMissing = errors.New("folioengine: remote table not provisioned")

// RemoteError is a classified error returned by the remote store.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("folioengine: remote error %s: %s", e.Code, e.Message)
}

// IsTableMissing reports whether err means the backing table is not
// provisioned, as opposed to a transient or generic remote failure.
func IsTableMissing(err error) bool {
	if errors.Is(err, ErrTableMissing) {
		return true
	}
	var re *RemoteError
	if !errors.As(err, &re) {
		return false
	}
	if re.Code == "42P01" || re.Code == "PGRST108" {
		return true
	}
	msg := strings.ToLower(re.Message)
	return strings.Contains(msg, "schema cache") || strings.Contains(msg, "not found")
}

// SupabaseStore implements Remote over the Supabase PostgREST API. The
// portfolio lives in a single row of the portfolio_state table:
// (id TEXT PRIMARY KEY, data JSONB, updated_at TIMESTAMPTZ).
type SupabaseStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewSupabaseStore creates a remote store client. baseURL is the project URL
// (e.g. https://xyz.supabase.co), apiKey the publishable anon key.
func NewSupabaseStore(baseURL, apiKey string) *SupabaseStore {
	return &SupabaseStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		table:   "portfolio_state",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// stateRow is the wire shape of the portfolio_state row.
type stateRow struct {
	ID        string        `json:"id"`
	Data      PortfolioData `json:"data"`
	UpdatedAt string        `json:"updated_at"`
}

// pgError is the PostgREST error body.
type pgError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *SupabaseStore) tableURL() string {
	return s.baseURL + "/rest/v1/" + s.table
}

func (s *SupabaseStore) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	return s.client.Do(req)
}

// remoteErr decodes a non-2xx PostgREST response into a RemoteError.
func remoteErr(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var pe pgError
	if err := json.Unmarshal(body, &pe); err != nil || (pe.Code == "" && pe.Message == "") {
		return &RemoteError{
			Code:    fmt.Sprintf("HTTP%d", resp.StatusCode),
			Message: strings.TrimSpace(string(body)),
		}
	}
	return &RemoteError{Code: pe.Code, Message: pe.Message}
}

// Upsert writes the full document snapshot, resolving id conflicts by merge.
func (s *SupabaseStore) Upsert(ctx context.Context, doc PortfolioData, updatedAt time.Time) error {
	rows := []stateRow{{
		ID:        DocumentKey,
		Data:      doc,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
	}}
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("folioengine: encode upsert payload: %w", err)
	}

	url := s.tableURL() + "?on_conflict=id"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("folioengine: upsert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return remoteErr(resp)
	}
	return nil
}

// Fetch reads the document row. An empty result set means no document has
// been stored yet.
func (s *SupabaseStore) Fetch(ctx context.Context) (PortfolioData, bool, error) {
	url := s.tableURL() + "?id=eq." + DocumentKey + "&select=data"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PortfolioData{}, false, err
	}

	resp, err := s.do(req)
	if err != nil {
		return PortfolioData{}, false, fmt.Errorf("folioengine: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return PortfolioData{}, false, remoteErr(resp)
	}

	var rows []struct {
		Data PortfolioData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return PortfolioData{}, false, fmt.Errorf("folioengine: decode fetch response: %w", err)
	}
	if len(rows) == 0 {
		return PortfolioData{}, false, nil
	}
	return rows[0].Data, true, nil
}

// Probe checks whether the backing table exists.
func (s *SupabaseStore) Probe(ctx context.Context) (bool, error) {
	url := s.tableURL() + "?select=id&limit=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := s.do(req)
	if err != nil {
		return false, fmt.Errorf("folioengine: probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		err := remoteErr(resp)
		if IsTableMissing(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
