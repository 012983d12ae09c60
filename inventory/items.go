package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stocklens/go-inventory-client/apiclient"
)

const itemsPath = "/inventory/items/"

// Items exposes typed operations over /inventory/items/. It is a pure
// path-and-payload binding over the request primitive; errors pass through
// untouched.
type Items struct {
	client *apiclient.Client
}

func NewItems(client *apiclient.Client) *Items {
	return &Items{client: client}
}

// ItemListParams narrows an item listing server-side. Zero values are
// omitted from the query string.
type ItemListParams struct {
	Search   string
	Category int64
	Ordering string
}

func (p ItemListParams) values() url.Values {
	query := url.Values{}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Category != 0 {
		query.Set("category", strconv.FormatInt(p.Category, 10))
	}
	if p.Ordering != "" {
		query.Set("ordering", p.Ordering)
	}
	return query
}

func (i *Items) List(ctx context.Context, params ItemListParams) ([]Item, error) {
	return apiclient.DoList[Item](ctx, i.client, apiclient.Request{
		Path:  itemsPath,
		Query: params.values(),
	})
}

func (i *Items) Get(ctx context.Context, id int64) (*Item, error) {
	var item Item
	if err := i.client.Do(ctx, apiclient.Request{Path: itemPath(id)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (i *Items) Create(ctx context.Context, input ItemInput) (*Item, error) {
	var item Item
	err := i.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   itemsPath,
		Body:   input,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (i *Items) Update(ctx context.Context, id int64, input ItemInput) (*Item, error) {
	var item Item
	err := i.client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   itemPath(id),
		Body:   input,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (i *Items) Delete(ctx context.Context, id int64) error {
	return i.client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   itemPath(id),
	}, nil)
}

// AdjustQuantity applies a relative stock change, recording notes in the
// audit log.
func (i *Items) AdjustQuantity(ctx context.Context, id int64, change int, notes string) (*Item, error) {
	payload := struct {
		QuantityChange int    `json:"quantity_change"`
		Notes          string `json:"notes,omitempty"`
	}{QuantityChange: change, Notes: notes}

	var item Item
	err := i.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   itemPath(id) + "adjust_quantity/",
		Body:   payload,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Level fetches the stock-level view of one item.
func (i *Items) Level(ctx context.Context, id int64) (*Level, error) {
	var level Level
	if err := i.client.Do(ctx, apiclient.Request{Path: itemPath(id) + "level/"}, &level); err != nil {
		return nil, err
	}
	return &level, nil
}

// Levels fetches stock levels for every item.
func (i *Items) Levels(ctx context.Context) ([]Level, error) {
	return apiclient.DoList[Level](ctx, i.client, apiclient.Request{
		Path: itemsPath + "level/",
	})
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s%d/", itemsPath, id)
}
