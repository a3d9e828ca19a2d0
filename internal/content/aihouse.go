package content

import (
	"context"
	"net/url"

	"uniportal.org/internal/api"
)

// Project is an AI house project row.
type Project struct {
	ID          api.FlexID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CreatorID   api.FlexID `json:"creator_id"`
	CreatorName string     `json:"creator_name,omitempty"`
	GithubURL   string     `json:"github_url"`
	DemoURL     string     `json:"demo_url"`
	TechStack   string     `json:"tech_stack"`
	CreatedAt   string     `json:"created_at"`
}

// ProjectInput carries the writable project fields. Status defaults to
// "planning" server-side.
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
	DemoURL     string `json:"demo_url,omitempty"`
	TechStack   string `json:"tech_stack,omitempty"`
}

// ProjectPage is one page of the project listing.
type ProjectPage struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Pages    int       `json:"pages"`
}

// Event is an AI house event row.
type Event struct {
	ID              api.FlexID `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EventDate       string     `json:"event_date"`
	EventTime       string     `json:"event_time"`
	Location        string     `json:"location"`
	MaxParticipants int        `json:"max_participants"`
	OrganizerID     api.FlexID `json:"organizer_id"`
	OrganizerName   string     `json:"organizer_name,omitempty"`
}

// EventInput carries the writable event fields.
type EventInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date"`
	EventTime       string `json:"event_time,omitempty"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants,omitempty"`
}

// AIHouse exposes the AI house endpoints.
type AIHouse struct {
	c *api.Client
}

func NewAIHouse(c *api.Client) *AIHouse { return &AIHouse{c: c} }

// Projects fetches the active projects.
func (a *AIHouse) Projects(ctx context.Context) (*ProjectPage, error) {
	var page ProjectPage
	if err := a.c.Get(ctx, "/ai-house/projects", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Events fetches the upcoming events.
func (a *AIHouse) Events(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := a.c.Get(ctx, "/ai-house/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateProject adds a project and returns its id.
func (a *AIHouse) CreateProject(ctx context.Context, in ProjectInput) (string, error) {
	var out Created
	if err := a.c.Post(ctx, "/ai-house/projects", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// CreateEvent adds an event and returns its id.
func (a *AIHouse) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	var out Created
	if err := a.c.Post(ctx, "/ai-house/events", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// UpdateProject replaces a project's fields.
func (a *AIHouse) UpdateProject(ctx context.Context, id string, in ProjectInput) error {
	return a.c.Put(ctx, "/ai-house/projects/"+url.PathEscape(id), in, nil)
}

// DeleteProject removes a project.
func (a *AIHouse) DeleteProject(ctx context.Context, id string) error {
	return a.c.Delete(ctx, "/ai-house/projects/"+url.PathEscape(id), nil)
}
