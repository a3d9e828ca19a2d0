package content

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"uniportal.org/internal/api"
)

// Article is a news entry as the backend returns it. Featured and Published
// arrive as 0/1 integers.
type Article struct {
	ID         api.FlexID `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Content    string     `json:"content"`
	Category   string     `json:"category"`
	AuthorID   api.FlexID `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	Featured   int        `json:"featured"`
	Published  int        `json:"published"`
	ImageURL   string     `json:"image_url"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

// ArticleInput carries the writable article fields.
type ArticleInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
	ImageURL  string `json:"image_url,omitempty"`
}

// ArticlePage is one page of the news listing.
type ArticlePage struct {
	News    []Article `json:"news"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Pages   int       `json:"pages"`
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// NewsFilter narrows the news listing. Zero values are omitted.
type NewsFilter struct {
	Page     int
	PerPage  int
	Category string
	Search   string
}

// News exposes the news endpoints.
type News struct {
	c *api.Client
}

func NewNews(c *api.Client) *News { return &News{c: c} }

// List fetches one page of published articles.
func (n *News) List(ctx context.Context, filter NewsFilter) (*ArticlePage, error) {
	q := url.Values{}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(filter.PerPage))
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	var page ArticlePage
	if err := n.c.Get(ctx, "/news"+encodeQuery(q), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single article by id.
func (n *News) Get(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := n.c.Get(ctx, "/news/"+url.PathEscape(id), &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Latest fetches the most recent published articles.
func (n *News) Latest(ctx context.Context, limit int) ([]Article, error) {
	path := "/news/latest"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var articles []Article
	if err := n.c.Get(ctx, path, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Featured fetches the featured articles.
func (n *News) Featured(ctx context.Context, limit int) ([]Article, error) {
	path := "/news/featured"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var articles []Article
	if err := n.c.Get(ctx, path, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Categories fetches the per-category article counts.
func (n *News) Categories(ctx context.Context) ([]CategoryCount, error) {
	var cats []CategoryCount
	if err := n.c.Get(ctx, "/news/categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create publishes a new article and returns its id.
func (n *News) Create(ctx context.Context, in ArticleInput) (string, error) {
	var out Created
	if err := n.c.Post(ctx, "/news", in, &out); err != nil {
		return "", err
	}
	return out.ID.String(), nil
}

// Update replaces an article's fields.
func (n *News) Update(ctx context.Context, id string, in ArticleInput) error {
	return n.c.Put(ctx, "/news/"+url.PathEscape(id), in, nil)
}

// Delete removes an article.
func (n *News) Delete(ctx context.Context, id string) error {
	return n.c.Delete(ctx, "/news/"+url.PathEscape(id), nil)
}

// UploadImage uploads an article image and returns its public URL.
func (n *News) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var out struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	if err := n.c.UploadFile(ctx, "/news/upload-image", "image", filename, data, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
