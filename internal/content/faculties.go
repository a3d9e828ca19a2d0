package content

import (
	"context"
	"net/url"

	"uniportal.org/internal/api"
)

// Faculty is a faculty row; Departments is populated on single-item reads.
type Faculty struct {
	ID              api.FlexID   `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Dean            string       `json:"dean"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Website         string       `json:"website"`
	ImageURL        string       `json:"image_url"`
	DepartmentCount int          `json:"department_count,omitempty"`
	Departments     []Department `json:"departments,omitempty"`
}

// Department is a department row; Programs is populated on single-item reads.
type Department struct {
	ID           api.FlexID `json:"id"`
	FacultyID    api.FlexID `json:"faculty_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	FacultyName  string     `json:"faculty_name,omitempty"`
	ProgramCount int        `json:"program_count,omitempty"`
	Programs     []Program  `json:"programs,omitempty"`
}

// Program is a study program row.
type Program struct {
	ID           api.FlexID `json:"id"`
	DepartmentID api.FlexID `json:"department_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
}

// FacultyInput carries the writable faculty fields.
type FacultyInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Dean        string `json:"dean"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	ImageURL    string `json:"image_url"`
}

// Faculties exposes the faculty endpoints.
type Faculties struct {
	c *api.Client
}

func NewFaculties(c *api.Client) *Faculties { return &Faculties{c: c} }

// List fetches all active faculties with department counts.
func (f *Faculties) List(ctx context.Context) ([]Faculty, error) {
	var out []Faculty
	if err := f.c.Get(ctx, "/faculties", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one faculty with its departments.
func (f *Faculties) Get(ctx context.Context, id string) (*Faculty, error) {
	var out Faculty
	if err := f.c.Get(ctx, "/faculties/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Departments fetches a faculty's departments with program counts.
func (f *Faculties) Departments(ctx context.Context, facultyID string) ([]Department, error) {
	var out []Department
	if err := f.c.Get(ctx, "/faculties/"+url.PathEscape(facultyID)+"/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a faculty and returns its id.
func (f *Faculties) Create(ctx context.Context, in FacultyInput) (string, error) {
	var out Created
	if err := f.c.Post(ctx, "/faculties", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// Update replaces a faculty's fields.
func (f *Faculties) Update(ctx context.Context, id string, in FacultyInput) error {
	return f.c.Put(ctx, "/faculties/"+url.PathEscape(id), in, nil)
}

// Delete removes a faculty.
func (f *Faculties) Delete(ctx context.Context, id string) error {
	return f.c.Delete(ctx, "/faculties/"+url.PathEscape(id), nil)
}
