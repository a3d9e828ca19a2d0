package content

import (
	"context"
	"net/url"
	"strconv"

	"uniportal.org/internal/api"
)

// File is a downloadable public file row.
type File struct {
	ID               api.FlexID `json:"id"`
	OriginalFilename string     `json:"original_filename"`
	Category         string     `json:"category"`
	Description      string     `json:"description"`
	FileSize         int64      `json:"file_size"`
	DownloadCount    int        `json:"download_count"`
	FacultyID        api.FlexID `json:"faculty_id"`
	FacultyName      string     `json:"faculty_name,omitempty"`
	CollegeName      string     `json:"college_name,omitempty"`
	UploadedByName   string     `json:"uploaded_by_name,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

// FilePage is one page of the public file listing.
type FilePage struct {
	Data    []File `json:"data"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Pages   int    `json:"pages"`
}

// FileFilter narrows the file listing. Zero values are omitted.
type FileFilter struct {
	Search    string
	Category  string
	FacultyID string
	Page      int
	PerPage   int
}

// FacultyRef is a faculty id/name pair used for filtering.
type FacultyRef struct {
	ID   api.FlexID `json:"id"`
	Name string     `json:"name"`
}

// FileStats is the download statistics summary.
type FileStats struct {
	TotalFiles     int            `json:"total_files"`
	TotalDownloads int            `json:"total_downloads"`
	ByCategory     map[string]int `json:"by_category"`
	RecentPopular  []File         `json:"recent_popular"`
}

// Downloads exposes the public file endpoints.
type Downloads struct {
	c *api.Client
}

func NewDownloads(c *api.Client) *Downloads { return &Downloads{c: c} }

// Files fetches one page of public files.
func (d *Downloads) Files(ctx context.Context, filter FileFilter) (*FilePage, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.FacultyID != "" {
		q.Set("faculty_id", filter.FacultyID)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(filter.PerPage))
	}
	var page FilePage
	if err := d.c.Get(ctx, "/downloads/files"+encodeQuery(q), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Faculties fetches the faculties that have public files, for filter menus.
func (d *Downloads) Faculties(ctx context.Context) ([]FacultyRef, error) {
	var out struct {
		Data []FacultyRef `json:"data"`
	}
	if err := d.c.Get(ctx, "/downloads/faculties", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Download fetches a file's raw bytes.
func (d *Downloads) Download(ctx context.Context, fileID string) ([]byte, error) {
	return d.c.GetBytes(ctx, "/downloads/file/"+url.PathEscape(fileID))
}

// Stats fetches the download statistics summary.
func (d *Downloads) Stats(ctx context.Context) (*FileStats, error) {
	var out struct {
		Data FileStats `json:"data"`
	}
	if err := d.c.Get(ctx, "/downloads/stats", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
