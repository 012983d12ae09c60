package inventory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stocklens/go-inventory-client/apiclient"
)

const itemSuppliersPath = "/inventory/item-suppliers/"

// ItemSuppliers exposes typed operations over /inventory/item-suppliers/.
type ItemSuppliers struct {
	client *apiclient.Client
}

func NewItemSuppliers(client *apiclient.Client) *ItemSuppliers {
	return &ItemSuppliers{client: client}
}

func (is *ItemSuppliers) List(ctx context.Context) ([]ItemSupplier, error) {
	return apiclient.DoList[ItemSupplier](ctx, is.client, apiclient.Request{
		Path: itemSuppliersPath,
	})
}

func (is *ItemSuppliers) Get(ctx context.Context, id int64) (*ItemSupplier, error) {
	var link ItemSupplier
	if err := is.client.Do(ctx, apiclient.Request{Path: itemSupplierPath(id)}, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (is *ItemSuppliers) Create(ctx context.Context, input ItemSupplierInput) (*ItemSupplier, error) {
	var link ItemSupplier
	err := is.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   itemSuppliersPath,
		Body:   input,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (is *ItemSuppliers) Update(ctx context.Context, id int64, input ItemSupplierInput) (*ItemSupplier, error) {
	var link ItemSupplier
	err := is.client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   itemSupplierPath(id),
		Body:   input,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (is *ItemSuppliers) Delete(ctx context.Context, id int64) error {
	return is.client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   itemSupplierPath(id),
	}, nil)
}

func itemSupplierPath(id int64) string {
	return fmt.Sprintf("%s%d/", itemSuppliersPath, id)
}
