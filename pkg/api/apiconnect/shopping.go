package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/pkg/api"
)

// ShoppingListServiceName is the fully-qualified name of the ShoppingListService.
const ShoppingListServiceName = "yolksters.v1.ShoppingListService"

// Procedure paths, as served by the handler and called by the client.
const (
	ShoppingListServiceAddIngredientsProcedure   = "/yolksters.v1.ShoppingListService/AddIngredients"
	ShoppingListServiceListItemsProcedure        = "/yolksters.v1.ShoppingListService/ListItems"
	ShoppingListServiceSetItemCheckedProcedure   = "/yolksters.v1.ShoppingListService/SetItemChecked"
	ShoppingListServiceSetAllCheckedProcedure    = "/yolksters.v1.ShoppingListService/SetAllChecked"
	ShoppingListServiceDeleteItemProcedure       = "/yolksters.v1.ShoppingListService/DeleteItem"
	ShoppingListServiceDeleteCheckedProcedure    = "/yolksters.v1.ShoppingListService/DeleteChecked"
	ShoppingListServiceParseIngredientsProcedure = "/yolksters.v1.ShoppingListService/ParseIngredients"
)

// ShoppingListServiceHandler manages the caller's shopping list.
type ShoppingListServiceHandler interface {
	// AddIngredients parses ingredient lines and merges them into the list.
	AddIngredients(context.Context, *connect.Request[api.AddIngredientsRequest]) (*connect.Response[api.AddIngredientsResponse], error)

	// ListItems returns the list grouped by category.
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)

	// SetItemChecked checks or unchecks one row.
	SetItemChecked(context.Context, *connect.Request[api.SetItemCheckedRequest]) (*connect.Response[api.SetItemCheckedResponse], error)

	// SetAllChecked checks or unchecks every row.
	SetAllChecked(context.Context, *connect.Request[api.SetAllCheckedRequest]) (*connect.Response[api.SetAllCheckedResponse], error)

	// DeleteItem removes one row.
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)

	// DeleteChecked removes all checked rows.
	DeleteChecked(context.Context, *connect.Request[api.DeleteCheckedRequest]) (*connect.Response[api.DeleteCheckedResponse], error)

	// ParseIngredients parses ingredient lines without storing them.
	ParseIngredients(context.Context, *connect.Request[api.ParseIngredientsRequest]) (*connect.Response[api.ParseIngredientsResponse], error)
}

// ShoppingListServiceClient is a client for the ShoppingListService.
type ShoppingListServiceClient interface {
	AddIngredients(context.Context, *connect.Request[api.AddIngredientsRequest]) (*connect.Response[api.AddIngredientsResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	SetItemChecked(context.Context, *connect.Request[api.SetItemCheckedRequest]) (*connect.Response[api.SetItemCheckedResponse], error)
	SetAllChecked(context.Context, *connect.Request[api.SetAllCheckedRequest]) (*connect.Response[api.SetAllCheckedResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	DeleteChecked(context.Context, *connect.Request[api.DeleteCheckedRequest]) (*connect.Response[api.DeleteCheckedResponse], error)
	ParseIngredients(context.Context, *connect.Request[api.ParseIngredientsRequest]) (*connect.Response[api.ParseIngredientsResponse], error)
}

// NewShoppingListServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewShoppingListServiceHandler(svc ShoppingListServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addIngredients := connect.NewUnaryHandler(ShoppingListServiceAddIngredientsProcedure, svc.AddIngredients, opts...)
	listItems := connect.NewUnaryHandler(ShoppingListServiceListItemsProcedure, svc.ListItems, opts...)
	setItemChecked := connect.NewUnaryHandler(ShoppingListServiceSetItemCheckedProcedure, svc.SetItemChecked, opts...)
	setAllChecked := connect.NewUnaryHandler(ShoppingListServiceSetAllCheckedProcedure, svc.SetAllChecked, opts...)
	deleteItem := connect.NewUnaryHandler(ShoppingListServiceDeleteItemProcedure, svc.DeleteItem, opts...)
	deleteChecked := connect.NewUnaryHandler(ShoppingListServiceDeleteCheckedProcedure, svc.DeleteChecked, opts...)
	parseIngredients := connect.NewUnaryHandler(ShoppingListServiceParseIngredientsProcedure, svc.ParseIngredients, opts...)
	return "/" + ShoppingListServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ShoppingListServiceAddIngredientsProcedure:
			addIngredients.ServeHTTP(w, r)
		case ShoppingListServiceListItemsProcedure:
			listItems.ServeHTTP(w, r)
		case ShoppingListServiceSetItemCheckedProcedure:
			setItemChecked.ServeHTTP(w, r)
		case ShoppingListServiceSetAllCheckedProcedure:
			setAllChecked.ServeHTTP(w, r)
		case ShoppingListServiceDeleteItemProcedure:
			deleteItem.ServeHTTP(w, r)
		case ShoppingListServiceDeleteCheckedProcedure:
			deleteChecked.ServeHTTP(w, r)
		case ShoppingListServiceParseIngredientsProcedure:
			parseIngredients.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewShoppingListServiceClient constructs a client for the ShoppingListService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewShoppingListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ShoppingListServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &shoppingListServiceClient{
		addIngredients:   connect.NewClient[api.AddIngredientsRequest, api.AddIngredientsResponse](httpClient, baseURL+ShoppingListServiceAddIngredientsProcedure, opts...),
		listItems:        connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](httpClient, baseURL+ShoppingListServiceListItemsProcedure, opts...),
		setItemChecked:   connect.NewClient[api.SetItemCheckedRequest, api.SetItemCheckedResponse](httpClient, baseURL+ShoppingListServiceSetItemCheckedProcedure, opts...),
		setAllChecked:    connect.NewClient[api.SetAllCheckedRequest, api.SetAllCheckedResponse](httpClient, baseURL+ShoppingListServiceSetAllCheckedProcedure, opts...),
		deleteItem:       connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+ShoppingListServiceDeleteItemProcedure, opts...),
		deleteChecked:    connect.NewClient[api.DeleteCheckedRequest, api.DeleteCheckedResponse](httpClient, baseURL+ShoppingListServiceDeleteCheckedProcedure, opts...),
		parseIngredients: connect.NewClient[api.ParseIngredientsRequest, api.ParseIngredientsResponse](httpClient, baseURL+ShoppingListServiceParseIngredientsProcedure, opts...),
	}
}

type shoppingListServiceClient struct {
	addIngredients   *connect.Client[api.AddIngredientsRequest, api.AddIngredientsResponse]
	listItems        *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	setItemChecked   *connect.Client[api.SetItemCheckedRequest, api.SetItemCheckedResponse]
	setAllChecked    *connect.Client[api.SetAllCheckedRequest, api.SetAllCheckedResponse]
	deleteItem       *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	deleteChecked    *connect.Client[api.DeleteCheckedRequest, api.DeleteCheckedResponse]
	parseIngredients *connect.Client[api.ParseIngredientsRequest, api.ParseIngredientsResponse]
}

func (c *shoppingListServiceClient) AddIngredients(ctx context.Context, req *connect.Request[api.AddIngredientsRequest]) (*connect.Response[api.AddIngredientsResponse], error) {
	return c.addIngredients.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) SetItemChecked(ctx context.Context, req *connect.Request[api.SetItemCheckedRequest]) (*connect.Response[api.SetItemCheckedResponse], error) {
	return c.setItemChecked.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) SetAllChecked(ctx context.Context, req *connect.Request[api.SetAllCheckedRequest]) (*connect.Response[api.SetAllCheckedResponse], error) {
	return c.setAllChecked.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) DeleteChecked(ctx context.Context, req *connect.Request[api.DeleteCheckedRequest]) (*connect.Response[api.DeleteCheckedResponse], error) {
	return c.deleteChecked.CallUnary(ctx, req)
}

func (c *shoppingListServiceClient) ParseIngredients(ctx context.Context, req *connect.Request[api.ParseIngredientsRequest]) (*connect.Response[api.ParseIngredientsResponse], error) {
	return c.parseIngredients.CallUnary(ctx, req)
}
