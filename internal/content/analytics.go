package content

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uniportal.org/internal/api"
	"uniportal.org/internal/obs"
)

// PageView is the payload for visit tracking. SessionID groups views from one
// visitor; the Analytics service fills it in when left empty.
type PageView struct {
	Page      string `json:"page"`
	Title     string `json:"title,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Overview is the dashboard headline block. Change fields are percentage
// deltas against the previous period.
type Overview struct {
	TotalVisits        int     `json:"totalVisits"`
	UniqueVisitors     int     `json:"uniqueVisitors"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	BounceRate         float64 `json:"bounceRate"`
	VisitsChange       float64 `json:"visitsChange"`
	VisitorsChange     float64 `json:"visitorsChange"`
}

// PageCount is one row of the top-pages table.
type PageCount struct {
	Page  string `json:"page"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

// ReferrerCount is one row of the top-referrers table.
type ReferrerCount struct {
	Source string `json:"source"`
	Visits int    `json:"visits"`
}

// RealTime is the live visitor block.
type RealTime struct {
	ActiveUsers       int `json:"activeUsers"`
	PageViewsLastHour int `json:"pageViewsLastHour"`
	NewVisitorsToday  int `json:"newVisitorsToday"`
}

// Dashboard is the admin analytics response.
type Dashboard struct {
	Overview     Overview        `json:"overview"`
	TopPages     []PageCount     `json:"topPages"`
	TopReferrers []ReferrerCount `json:"topReferrers"`
	RealTime     RealTime        `json:"realTime"`
}

// Analytics exposes visit tracking and the admin dashboard reads.
type Analytics struct {
	c   *api.Client
	log *zap.Logger

	mu        sync.Mutex
	sessionID string
}

func NewAnalytics(c *api.Client) *Analytics {
	return &Analytics{c: c, log: obs.Logger()}
}

// sessionIDLocked returns the per-process visitor session id, minting one on
// first use.
func (a *Analytics) sessionIDLocked() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sessionID == "" {
		a.sessionID = uuid.NewString()
	}
	return a.sessionID
}

// TrackPageView records a visit. Tracking is best-effort: failures are logged
// at debug level and never surfaced, so a broken analytics backend cannot
// break navigation.
func (a *Analytics) TrackPageView(ctx context.Context, view PageView) {
	if view.SessionID == "" {
		view.SessionID = a.sessionIDLocked()
	}
	if view.Page == "" {
		view.Page = "/"
	}
	if err := a.c.Post(ctx, "/analytics/track", view, nil); err != nil {
		a.log.Debug("analytics tracking failed", zap.String("page", view.Page), zap.Error(err))
	}
}

// GetDashboard fetches the aggregated dashboard for a time range ("1d", "7d",
// "30d", "90d"); empty defaults to "7d" server-side.
func (a *Analytics) GetDashboard(ctx context.Context, timeRange string) (*Dashboard, error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("timeRange", timeRange)
	}
	var out struct {
		Data Dashboard `json:"data"`
	}
	if err := a.c.Get(ctx, "/analytics/dashboard"+encodeQuery(q), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetPageStats fetches the per-page breakdown.
func (a *Analytics) GetPageStats(ctx context.Context, page, timeRange string) (*PageCount, error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("timeRange", timeRange)
	}
	var out struct {
		Data PageCount `json:"data"`
	}
	if err := a.c.Get(ctx, "/analytics/page/"+url.PathEscape(page)+encodeQuery(q), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetRealTime fetches the live visitor stats.
func (a *Analytics) GetRealTime(ctx context.Context) (*RealTime, error) {
	var out struct {
		Data RealTime `json:"data"`
	}
	if err := a.c.Get(ctx, "/analytics/realtime", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Export fetches an analytics export. format is "csv" or "json".
func (a *Analytics) Export(ctx context.Context, timeRange, format string) ([]byte, error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("timeRange", timeRange)
	}
	if format != "" {
		q.Set("format", format)
	}
	return a.c.GetBytes(ctx, "/analytics/export"+encodeQuery(q))
}
