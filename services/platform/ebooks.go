package platform

import (
	"context"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/ebook"
	"github.com/kondoo/console/services/rest"
)

var _ ebook.Client = (*EbookClient)(nil)

type EbookClient struct {
	rest *rest.Client
}

func NewEbookClient(rc *rest.Client) *EbookClient {
	return &EbookClient{rest: rc}
}

func (c *EbookClient) ListEbooks(ctx context.Context, filter ebook.Filter) ([]ebook.Ebook, error) {
	params := listParams(
		"search", filter.Search,
		"category", filter.Category,
		"publication", filter.Publication,
	)
	var out []ebook.Ebook
	if err := c.rest.Get(ctx, "/ebooks", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EbookClient) GetEbook(ctx context.Context, id string) (ebook.Ebook, error) {
	var out ebook.Ebook
	err := c.rest.Get(ctx, "/ebooks/"+id, nil, &out)
	return out, err
}

func (c *EbookClient) CreateEbook(ctx context.Context, data ebook.NewEbook) (ebook.Ebook, error) {
	form := rest.NewForm().
		Set("title", data.Title).
		Set("author", data.Author).
		Set("description", data.Description).
		Set("price", data.Price).
		Set("categories", data.CategoryIDs)
	if data.PublicationID != "" {
		form.Set("publication", data.PublicationID)
	}
	if data.LanguageID != "" {
		form.Set("language", data.LanguageID)
	}
	form.AddFile("bookFile", data.BookFile)
	form.AddFile("thumbnail", data.Thumbnail)

	var out ebook.Ebook
	err := c.rest.Post(ctx, "/ebooks", form, &out)
	return out, err
}

func (c *EbookClient) UpdateEbook(ctx context.Context, id string, data ebook.UpdateEbook) (ebook.Ebook, error) {
	var out ebook.Ebook
	err := c.rest.Put(ctx, "/ebooks/"+id, data, &out)
	return out, err
}

func (c *EbookClient) DeleteEbook(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/ebooks/"+id, nil)
}

func (c *EbookClient) SetEbookCategories(ctx context.Context, id string, categoryIDs []string) (ebook.Ebook, error) {
	body := map[string][]string{"categories": categoryIDs}
	var out ebook.Ebook
	err := c.rest.Patch(ctx, "/ebooks/"+id+"/categories", body, &out)
	return out, err
}

func (c *EbookClient) UpdateEbookFile(ctx context.Context, id string, file *core.Attachment) (ebook.Ebook, error) {
	form := rest.NewForm().AddFile("bookFile", file)
	var out ebook.Ebook
	err := c.rest.Patch(ctx, "/ebooks/"+id+"/book-file", form, &out)
	return out, err
}

func (c *EbookClient) UpdateEbookThumbnail(ctx context.Context, id string, thumb *core.Attachment) (ebook.Ebook, error) {
	form := rest.NewForm().AddFile("thumbnail", thumb)
	var out ebook.Ebook
	err := c.rest.Patch(ctx, "/ebooks/"+id+"/thumbnail", form, &out)
	return out, err
}
