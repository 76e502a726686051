package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/pkg/api"
)

// RecipeServiceName is the fully-qualified name of the RecipeService.
const RecipeServiceName = "yolksters.v1.RecipeService"

// Procedure paths, as served by the handler and called by the client.
const (
	RecipeServiceFetchRecipeProcedure = "/yolksters.v1.RecipeService/FetchRecipe"
)

// RecipeServiceHandler imports recipes from the web.
type RecipeServiceHandler interface {
	// FetchRecipe downloads a recipe page and extracts its recipe.
	FetchRecipe(context.Context, *connect.Request[api.FetchRecipeRequest]) (*connect.Response[api.FetchRecipeResponse], error)
}

// RecipeServiceClient is a client for the RecipeService.
type RecipeServiceClient interface {
	FetchRecipe(context.Context, *connect.Request[api.FetchRecipeRequest]) (*connect.Response[api.FetchRecipeResponse], error)
}

// NewRecipeServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRecipeServiceHandler(svc RecipeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	fetchRecipe := connect.NewUnaryHandler(RecipeServiceFetchRecipeProcedure, svc.FetchRecipe, opts...)
	return "/" + RecipeServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RecipeServiceFetchRecipeProcedure:
			fetchRecipe.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewRecipeServiceClient constructs a client for the RecipeService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewRecipeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RecipeServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &recipeServiceClient{
		fetchRecipe: connect.NewClient[api.FetchRecipeRequest, api.FetchRecipeResponse](httpClient, baseURL+RecipeServiceFetchRecipeProcedure, opts...),
	}
}

type recipeServiceClient struct {
	fetchRecipe *connect.Client[api.FetchRecipeRequest, api.FetchRecipeResponse]
}

func (c *recipeServiceClient) FetchRecipe(ctx context.Context, req *connect.Request[api.FetchRecipeRequest]) (*connect.Response[api.FetchRecipeResponse], error) {
	return c.fetchRecipe.CallUnary(ctx, req)
}
