package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yolksters/pkg/api"
)

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&api.ParsedIngredient{Original: "salt", Name: "salt", Category: "Pantry"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"original":"salt","quantity":null,"unit":null,"name":"salt","category":"Pantry"}`, string(data))

	var msg api.ListItemsRequest
	assert.NoError(t, c.Unmarshal(nil, &msg))
	assert.Error(t, c.Unmarshal([]byte("{"), &msg))
}

type echoRecipes struct{}

func (echoRecipes) FetchRecipe(_ context.Context, req *connect.Request[api.FetchRecipeRequest]) (*connect.Response[api.FetchRecipeResponse], error) {
	if req.Msg.URL == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("url is required"))
	}
	return connect.NewResponse(&api.FetchRecipeResponse{Recipe: &api.Recipe{Name: req.Msg.URL}}), nil
}

func TestRecipeService_RoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	path, handler := NewRecipeServiceHandler(echoRecipes{})
	assert.Equal(t, "/yolksters.v1.RecipeService/", path)
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewRecipeServiceClient(server.Client(), server.URL+"/")

	resp, err := client.FetchRecipe(context.Background(), connect.NewRequest(&api.FetchRecipeRequest{URL: "https://example.com/r"}))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/r", resp.Msg.Recipe.Name)

	_, err = client.FetchRecipe(context.Background(), connect.NewRequest(&api.FetchRecipeRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestHandler_UnknownProcedure(t *testing.T) {
	_, handler := NewRecipeServiceHandler(echoRecipes{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/yolksters.v1.RecipeService/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
