package content

import (
	"context"
	"net/url"

	"uniportal.org/internal/api"
)

// Startup is an incubator startup row.
type Startup struct {
	ID            api.FlexID `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Industry      string     `json:"industry"`
	Stage         string     `json:"stage"`
	FounderID     api.FlexID `json:"founder_id"`
	FounderName   string     `json:"founder_name,omitempty"`
	Website       string     `json:"website"`
	PitchDeckURL  string     `json:"pitch_deck_url"`
	BusinessModel string     `json:"business_model"`
	TargetMarket  string     `json:"target_market"`
	CreatedAt     string     `json:"created_at"`
}

// StartupInput carries the writable startup fields. Stage defaults to "idea"
// server-side.
type StartupInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Industry      string `json:"industry"`
	Stage         string `json:"stage,omitempty"`
	Website       string `json:"website,omitempty"`
	PitchDeckURL  string `json:"pitch_deck_url,omitempty"`
	BusinessModel string `json:"business_model,omitempty"`
	TargetMarket  string `json:"target_market,omitempty"`
}

// StartupPage is one page of the startup listing.
type StartupPage struct {
	Startups []Startup `json:"startups"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Pages    int       `json:"pages"`
}

// IncubatorProgram is an incubator program row.
type IncubatorProgram struct {
	ID          api.FlexID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Status      string     `json:"status"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
}

// Incubator exposes the incubator endpoints.
type Incubator struct {
	c *api.Client
}

func NewIncubator(c *api.Client) *Incubator { return &Incubator{c: c} }

// Startups fetches the active startups.
func (i *Incubator) Startups(ctx context.Context) (*StartupPage, error) {
	var page StartupPage
	if err := i.c.Get(ctx, "/incubator/startups", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Programs fetches the incubator programs.
func (i *Incubator) Programs(ctx context.Context) ([]IncubatorProgram, error) {
	var programs []IncubatorProgram
	if err := i.c.Get(ctx, "/incubator/programs", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// ProgramInput carries the writable program fields.
type ProgramInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// CreateProgram adds an incubator program and returns its id.
func (i *Incubator) CreateProgram(ctx context.Context, in ProgramInput) (string, error) {
	var out Created
	if err := i.c.Post(ctx, "/incubator/programs", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// CreateStartup adds a startup and returns its id.
func (i *Incubator) CreateStartup(ctx context.Context, in StartupInput) (string, error) {
	var out Created
	if err := i.c.Post(ctx, "/incubator/startups", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// UpdateStartup replaces a startup's fields.
func (i *Incubator) UpdateStartup(ctx context.Context, id string, in StartupInput) error {
	return i.c.Put(ctx, "/incubator/startups/"+url.PathEscape(id), in, nil)
}

// DeleteStartup removes a startup.
func (i *Incubator) DeleteStartup(ctx context.Context, id string) error {
	return i.c.Delete(ctx, "/incubator/startups/"+url.PathEscape(id), nil)
}
