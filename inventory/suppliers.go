package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stocklens/go-inventory-client/apiclient"
)

const suppliersPath = "/inventory/suppliers/"

// Suppliers exposes typed operations over /inventory/suppliers/.
type Suppliers struct {
	client *apiclient.Client
}

func NewSuppliers(client *apiclient.Client) *Suppliers {
	return &Suppliers{client: client}
}

func (s *Suppliers) List(ctx context.Context, search string) ([]Supplier, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	return apiclient.DoList[Supplier](ctx, s.client, apiclient.Request{
		Path:  suppliersPath,
		Query: query,
	})
}

func (s *Suppliers) Get(ctx context.Context, id int64) (*Supplier, error) {
	var supplier Supplier
	if err := s.client.Do(ctx, apiclient.Request{Path: supplierPath(id)}, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Suppliers) Create(ctx context.Context, input SupplierInput) (*Supplier, error) {
	var supplier Supplier
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   suppliersPath,
		Body:   input,
	}, &supplier)
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Suppliers) Update(ctx context.Context, id int64, input SupplierInput) (*Supplier, error) {
	var supplier Supplier
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   supplierPath(id),
		Body:   input,
	}, &supplier)
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Suppliers) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   supplierPath(id),
	}, nil)
}

func supplierPath(id int64) string {
	return fmt.Sprintf("%s%d/", suppliersPath, id)
}
