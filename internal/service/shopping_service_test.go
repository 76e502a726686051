package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/yolksters/internal/metrics"
	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/storage"
	"github.com/mmynk/yolksters/pkg/api"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

func addIngredients(t *testing.T, client apiconnect.ShoppingListServiceClient, lines ...string) *api.AddIngredientsResponse {
	t.Helper()
	resp, err := client.AddIngredients(context.Background(), connect.NewRequest(&api.AddIngredientsRequest{Ingredients: lines}))
	if err != nil {
		t.Fatalf("AddIngredients failed: %v", err)
	}
	return resp.Msg
}

func findItem(groups []*api.CategoryGroup, name string) *api.ShoppingListItem {
	for _, g := range groups {
		for _, item := range g.Items {
			if item.Name == name {
				return item
			}
		}
	}
	return nil
}

func TestAddIngredients_InsertsAndGroups(t *testing.T) {
	client, _, m := setupShoppingServer(t)

	resp := addIngredients(t, client, "2 cups flour", "1 onion", "2 large eggs", "unicorn tears")

	if resp.Inserted != 4 || resp.Updated != 0 {
		t.Errorf("Expected 4 inserts and 0 updates, got %d and %d", resp.Inserted, resp.Updated)
	}

	wantOrder := []string{"Produce", "Dairy", "Pantry", "Other"}
	if len(resp.Groups) != len(wantOrder) {
		t.Fatalf("Expected %d groups, got %d", len(wantOrder), len(resp.Groups))
	}
	for i, c := range wantOrder {
		if resp.Groups[i].Category != c {
			t.Errorf("groups[%d] = %q, want %q", i, resp.Groups[i].Category, c)
		}
	}

	eggs := findItem(resp.Groups, "eggs")
	if eggs == nil || eggs.Checked || eggs.Item != "2 large eggs" {
		t.Errorf("Unexpected eggs row: %+v", eggs)
	}

	if got := testutil.ToFloat64(m.ReconcileRows.WithLabelValues(metrics.OutcomeInserted)); got != 4 {
		t.Errorf("reconcile_rows_total{inserted} = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.IngredientsParsed.WithLabelValues("Produce")); got != 1 {
		t.Errorf("ingredients_parsed_total{Produce} = %v, want 1", got)
	}
}

func TestAddIngredients_Combines(t *testing.T) {
	client, _, _ := setupShoppingServer(t)

	addIngredients(t, client, "1 cup flour", "2 onions")
	resp := addIngredients(t, client, "2 cups flour", "1 onion", "salt")

	if resp.Updated != 2 || resp.Inserted != 1 {
		t.Errorf("Expected 2 updates and 1 insert, got %d and %d", resp.Updated, resp.Inserted)
	}

	flour := findItem(resp.Groups, "flour")
	if flour == nil || flour.Quantity == nil || *flour.Quantity != 3 || flour.Item != "3 cup flour" {
		t.Errorf("Unexpected flour row: %+v", flour)
	}
	onion := findItem(resp.Groups, "onion")
	if onion == nil || onion.Quantity == nil || *onion.Quantity != 3 || onion.Unit != nil {
		t.Errorf("Unexpected onion row: %+v", onion)
	}
}

func TestAddIngredients_KeepsCheckedFlag(t *testing.T) {
	client, _, _ := setupShoppingServer(t)
	ctx := context.Background()

	first := addIngredients(t, client, "1 cup milk")
	milk := findItem(first.Groups, "milk")
	if _, err := client.SetItemChecked(ctx, connect.NewRequest(&api.SetItemCheckedRequest{ItemID: milk.ID, Checked: true})); err != nil {
		t.Fatalf("SetItemChecked failed: %v", err)
	}

	resp := addIngredients(t, client, "1 cup milk")
	merged := findItem(resp.Groups, "milk")
	if merged == nil || !merged.Checked || *merged.Quantity != 2 {
		t.Errorf("Merged row should keep its checked flag: %+v", merged)
	}
}

func TestAddIngredients_EmptyRequest(t *testing.T) {
	client, _, _ := setupShoppingServer(t)

	for _, lines := range [][]string{nil, {"", "  "}} {
		_, err := client.AddIngredients(context.Background(), connect.NewRequest(&api.AddIngredientsRequest{Ingredients: lines}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("AddIngredients(%q) code = %v, want InvalidArgument", lines, connect.CodeOf(err))
		}
	}
}

func TestAddIngredients_Concurrent(t *testing.T) {
	client, _, _ := setupShoppingServer(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.AddIngredients(ctx, connect.NewRequest(&api.AddIngredientsRequest{Ingredients: []string{"1 cup sugar"}}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AddIngredients failed: %v", err)
		}
	}

	resp, err := client.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if resp.Msg.TotalItems != 1 {
		t.Fatalf("Expected a single merged row, got %d", resp.Msg.TotalItems)
	}
	sugar := findItem(resp.Msg.Groups, "sugar")
	if sugar == nil || *sugar.Quantity != n {
		t.Errorf("No merge should be lost: %+v", sugar)
	}
}

func TestChecking(t *testing.T) {
	client, _, _ := setupShoppingServer(t)
	ctx := context.Background()

	resp := addIngredients(t, client, "1 lemon", "2 limes", "1 lb butter")
	lemon := findItem(resp.Groups, "lemon")

	t.Run("SetItemChecked", func(t *testing.T) {
		if _, err := client.SetItemChecked(ctx, connect.NewRequest(&api.SetItemCheckedRequest{ItemID: lemon.ID, Checked: true})); err != nil {
			t.Fatalf("SetItemChecked failed: %v", err)
		}
		list, err := client.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if list.Msg.CheckedItems != 1 || list.Msg.TotalItems != 3 {
			t.Errorf("Expected 1 of 3 checked, got %d of %d", list.Msg.CheckedItems, list.Msg.TotalItems)
		}
	})

	t.Run("SetItemChecked validates input", func(t *testing.T) {
		_, err := client.SetItemChecked(ctx, connect.NewRequest(&api.SetItemCheckedRequest{Checked: true}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
		}
		_, err = client.SetItemChecked(ctx, connect.NewRequest(&api.SetItemCheckedRequest{ItemID: "missing", Checked: true}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("code = %v, want NotFound", connect.CodeOf(err))
		}
	})

	t.Run("other users cannot touch the row", func(t *testing.T) {
		_, err := client.SetItemChecked(ctx, asUser("bob", &api.SetItemCheckedRequest{ItemID: lemon.ID}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("code = %v, want NotFound", connect.CodeOf(err))
		}
		_, err = client.DeleteItem(ctx, asUser("bob", &api.DeleteItemRequest{ItemID: lemon.ID}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("code = %v, want NotFound", connect.CodeOf(err))
		}
	})

	t.Run("SetAllChecked", func(t *testing.T) {
		out, err := client.SetAllChecked(ctx, connect.NewRequest(&api.SetAllCheckedRequest{Checked: true}))
		if err != nil {
			t.Fatalf("SetAllChecked failed: %v", err)
		}
		if out.Msg.Affected != 2 {
			t.Errorf("Affected = %d, want 2", out.Msg.Affected)
		}
	})

	t.Run("DeleteChecked", func(t *testing.T) {
		out, err := client.DeleteChecked(ctx, connect.NewRequest(&api.DeleteCheckedRequest{}))
		if err != nil {
			t.Fatalf("DeleteChecked failed: %v", err)
		}
		if out.Msg.Deleted != 3 {
			t.Errorf("Deleted = %d, want 3", out.Msg.Deleted)
		}
		list, _ := client.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
		if list.Msg.TotalItems != 0 || len(list.Msg.Groups) != 0 {
			t.Errorf("Expected empty list, got %+v", list.Msg)
		}
	})
}

func TestDeleteItem(t *testing.T) {
	client, _, _ := setupShoppingServer(t)
	ctx := context.Background()

	resp := addIngredients(t, client, "1 lemon")
	lemon := findItem(resp.Groups, "lemon")

	if _, err := client.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ItemID: lemon.ID})); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	_, err := client.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ItemID: lemon.ID}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("Second delete code = %v, want NotFound", connect.CodeOf(err))
	}
	_, err = client.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("Empty ID code = %v, want InvalidArgument", connect.CodeOf(err))
	}
}

func TestListsAreIsolatedPerUser(t *testing.T) {
	client, _, _ := setupShoppingServer(t)
	ctx := context.Background()

	addIngredients(t, client, "1 cup flour")
	if _, err := client.AddIngredients(ctx, asUser("bob", &api.AddIngredientsRequest{Ingredients: []string{"1 cup flour"}})); err != nil {
		t.Fatalf("AddIngredients for bob failed: %v", err)
	}

	list, err := client.ListItems(ctx, asUser("bob", &api.ListItemsRequest{}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	flour := findItem(list.Msg.Groups, "flour")
	if flour == nil || *flour.Quantity != 1 {
		t.Errorf("Bob's flour should not merge with Alice's: %+v", flour)
	}
}

func TestParseIngredients(t *testing.T) {
	client, store, _ := setupShoppingServer(t)
	ctx := context.Background()

	resp, err := client.ParseIngredients(ctx, connect.NewRequest(&api.ParseIngredientsRequest{
		Ingredients: []string{"3 tbsp. olive oil", "salt to taste"},
	}))
	if err != nil {
		t.Fatalf("ParseIngredients failed: %v", err)
	}
	if len(resp.Msg.Ingredients) != 2 {
		t.Fatalf("Expected 2 parsed ingredients, got %d", len(resp.Msg.Ingredients))
	}
	oil := resp.Msg.Ingredients[0]
	if oil.Unit == nil || *oil.Unit != "tablespoon" || oil.Name != "olive oil" || oil.Category != "Pantry" {
		t.Errorf("Unexpected parse: %+v", oil)
	}
	if resp.Msg.Ingredients[1].Quantity != nil {
		t.Errorf("salt to taste should have no quantity")
	}

	items, _ := store.FetchItems(ctx, "alice")
	if len(items) != 0 {
		t.Errorf("ParseIngredients must not store rows, found %d", len(items))
	}
}

// failingApplyStore delegates to a real store but refuses to write merges.
type failingApplyStore struct {
	storage.Store
}

func (failingApplyStore) ApplyChanges(ctx context.Context, userID string, updates []models.ShoppingListItem, inserts []models.NewItem) error {
	return errors.New("disk I/O error")
}

func TestAddIngredients_StorageFailure(t *testing.T) {
	t.Run("failed write is Internal and leaves the list untouched", func(t *testing.T) {
		_, store, m := setupShoppingServer(t)
		if _, err := store.InsertItems(context.Background(), "alice", []models.NewItem{{Item: "tomato", Name: "tomato", Category: "Produce"}}); err != nil {
			t.Fatalf("InsertItems failed: %v", err)
		}
		client := serveShopping(t, failingApplyStore{Store: store}, m)

		_, err := client.AddIngredients(context.Background(), connect.NewRequest(&api.AddIngredientsRequest{Ingredients: []string{"1 cup flour"}}))
		if got := connect.CodeOf(err); got != connect.CodeInternal {
			t.Fatalf("code = %v, want Internal", got)
		}
		if strings.Contains(err.Error(), "disk I/O") {
			t.Errorf("storage detail leaked to the caller: %v", err)
		}

		items, err := store.FetchItems(context.Background(), "alice")
		if err != nil {
			t.Fatalf("FetchItems failed: %v", err)
		}
		if len(items) != 1 || items[0].Item != "tomato" {
			t.Errorf("list changed after a failed write: %+v", items)
		}
		if got := testutil.ToFloat64(m.ReconcileRows.WithLabelValues(metrics.OutcomeInserted)); got != 0 {
			t.Errorf("reconcile_rows_total{inserted} = %v, want 0", got)
		}
	})

	t.Run("unreadable store is Internal", func(t *testing.T) {
		_, store, m := setupShoppingServer(t)
		client := serveShopping(t, store, m)
		store.Close()

		_, err := client.AddIngredients(context.Background(), connect.NewRequest(&api.AddIngredientsRequest{Ingredients: []string{"1 cup flour"}}))
		if got := connect.CodeOf(err); got != connect.CodeInternal {
			t.Errorf("code = %v, want Internal", got)
		}
	})

	t.Run("missing user is Unauthenticated, not Internal", func(t *testing.T) {
		_, store, m := setupShoppingServer(t)
		svc := NewShoppingService(failingApplyStore{Store: store}, discardLogger(), m)

		_, err := svc.AddIngredients(context.Background(), connect.NewRequest(&api.AddIngredientsRequest{Ingredients: []string{"1 cup flour"}}))
		if got := connect.CodeOf(err); got != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want Unauthenticated", got)
		}
	})
}
