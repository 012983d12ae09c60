package inventory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens/go-inventory-client/apiclient"
	"github.com/stocklens/go-inventory-client/credstore"
	"github.com/stocklens/go-inventory-client/credstore/repofake"
	"github.com/stocklens/go-inventory-client/inventory"
)

// testFixture serves scripted responses keyed by method and path.
type testFixture struct {
	t        *testing.T
	repo     *repofake.FakeCredRepo
	client   *apiclient.Client
	mux      *http.ServeMux
	requests []string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{t: t, repo: repofake.NewFakeCredRepo(), mux: http.NewServeMux()}
	require.NoError(t, f.repo.SetCredentials(&credstore.Credentials{
		Access:  "access-1",
		Refresh: "refresh-1",
	}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI())
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, f.repo)
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *testFixture) respond(pattern string, status int, payload string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != "" {
			w.Write([]byte(payload))
		}
	})
}

func TestItemsListNormalizesBothShapes(t *testing.T) {
	bare := setupTestFixture(t)
	bare.respond("/inventory/items/", http.StatusOK,
		`[{"id":1,"name":"bolt","quantity":5,"price":"1.50"},{"id":2,"name":"nut","quantity":9,"price":"0.75"}]`)

	enveloped := setupTestFixture(t)
	enveloped.respond("/inventory/items/", http.StatusOK,
		`{"count":2,"results":[{"id":1,"name":"bolt","quantity":5,"price":"1.50"},{"id":2,"name":"nut","quantity":9,"price":"0.75"}]}`)

	fromBare, err := inventory.NewItems(bare.client).List(context.Background(), inventory.ItemListParams{})
	require.NoError(t, err)

	fromEnvelope, err := inventory.NewItems(enveloped.client).List(context.Background(), inventory.ItemListParams{})
	require.NoError(t, err)

	require.Equal(t, fromBare, fromEnvelope)
	require.Len(t, fromBare, 2)
	require.Equal(t, "bolt", fromBare[0].Name)
	require.Equal(t, 1.50, fromBare[0].UnitPrice())
}

func TestItemsListParams(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/items/", http.StatusOK, `[]`)

	_, err := inventory.NewItems(f.client).List(context.Background(), inventory.ItemListParams{
		Search:   "bolt",
		Category: 3,
		Ordering: "name",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"GET /inventory/items/?category=3&ordering=name&search=bolt"}, f.requests)
}

func TestItemsCreateSendsPayload(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("/inventory/items/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var input inventory.ItemInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, "bolt", input.Name)
		require.Equal(t, "1.50", input.Price)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"bolt","quantity":5,"price":"1.50"}`))
	})

	item, err := inventory.NewItems(f.client).Create(context.Background(), inventory.ItemInput{
		Name:     "bolt",
		Quantity: 5,
		Price:    "1.50",
	})
	require.NoError(t, err)
	require.EqualValues(t, 7, item.ID)
}

func TestItemsDelete(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/items/7/", http.StatusNoContent, "")

	require.NoError(t, inventory.NewItems(f.client).Delete(context.Background(), 7))
	require.Equal(t, []string{"DELETE /inventory/items/7/"}, f.requests)
}

func TestItemsAdjustQuantity(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("/inventory/items/7/adjust_quantity/", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			QuantityChange int    `json:"quantity_change"`
			Notes          string `json:"notes"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, -3, body.QuantityChange)
		require.Equal(t, "damaged in transit", body.Notes)
		w.Write([]byte(`{"id":7,"name":"bolt","quantity":2,"price":"1.50"}`))
	})

	item, err := inventory.NewItems(f.client).AdjustQuantity(context.Background(), 7, -3, "damaged in transit")
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)
}

func TestItemsListRefreshesExpiredTokenTransparently(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"access-2"}`))
	})
	f.mux.HandleFunc("/inventory/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"bolt","quantity":5,"price":"1.50"}]`))
	})

	// The caller sees the requested data, never the 401.
	items, err := inventory.NewItems(f.client).List(context.Background(), inventory.ItemListParams{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	creds, err := f.repo.Credentials()
	require.NoError(t, err)
	require.Equal(t, "access-2", creds.Access)
}

func TestLogsForItemPath(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/logs/7/item/", http.StatusOK,
		`[{"id":1,"item":7,"action":"REMOVE","quantity_change":-3,"previous_quantity":5,"new_quantity":2}]`)

	entries, err := inventory.NewLogs(f.client).ForItem(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, inventory.LogActionRemove, entries[0].Action)
	require.Equal(t, []string{"GET /inventory/logs/7/item/"}, f.requests)
}

func TestLogsRecentChanges(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/logs/recent_changes/", http.StatusOK, `{"results":[]}`)

	_, err := inventory.NewLogs(f.client).RecentChanges(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, []string{"GET /inventory/logs/recent_changes/?days=7"}, f.requests)
}

func TestCategoriesRoundTrip(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/categories/", http.StatusOK,
		`{"results":[{"id":3,"name":"Fasteners"}]}`)

	categories, err := inventory.NewCategories(f.client).List(context.Background(), "fast")
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, "Fasteners", categories[0].Name)
	require.Equal(t, []string{"GET /inventory/categories/?search=fast"}, f.requests)
}

func TestItemSuppliersList(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/item-suppliers/", http.StatusOK,
		`[{"id":1,"item":7,"supplier":2,"supplier_price":"1.10","lead_time_days":4}]`)

	links, err := inventory.NewItemSuppliers(f.client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.NotNil(t, links[0].LeadTimeDays)
	require.Equal(t, 4, *links[0].LeadTimeDays)
}

func TestSuppliersGetSurfacesRequestError(t *testing.T) {
	f := setupTestFixture(t)
	f.respond("/inventory/suppliers/9/", http.StatusNotFound, `{"detail":"Not found."}`)

	_, err := inventory.NewSuppliers(f.client).Get(context.Background(), 9)

	var reqErr *apiclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusNotFound, reqErr.Status)
}
