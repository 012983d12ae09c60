package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stocklens/go-inventory-client/apiclient"
)

const categoriesPath = "/inventory/categories/"

// Categories exposes typed operations over /inventory/categories/.
type Categories struct {
	client *apiclient.Client
}

func NewCategories(client *apiclient.Client) *Categories {
	return &Categories{client: client}
}

func (c *Categories) List(ctx context.Context, search string) ([]Category, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	return apiclient.DoList[Category](ctx, c.client, apiclient.Request{
		Path:  categoriesPath,
		Query: query,
	})
}

func (c *Categories) Get(ctx context.Context, id int64) (*Category, error) {
	var category Category
	if err := c.client.Do(ctx, apiclient.Request{Path: categoryPath(id)}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	var category Category
	err := c.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   categoriesPath,
		Body:   input,
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Update(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	var category Category
	err := c.client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   categoryPath(id),
		Body:   input,
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Delete(ctx context.Context, id int64) error {
	return c.client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   categoryPath(id),
	}, nil)
}

func categoryPath(id int64) string {
	return fmt.Sprintf("%s%d/", categoriesPath, id)
}
