package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yolksters/internal/ingredient"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := execute(t, "", "parse", "2 cups flour", "salt to taste")
	require.NoError(t, err)

	var parsed []ingredient.Parsed
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed, 2)

	require.NotNil(t, parsed[0].Quantity)
	assert.Equal(t, 2.0, *parsed[0].Quantity)
	require.NotNil(t, parsed[0].Unit)
	assert.Equal(t, "cup", *parsed[0].Unit)
	assert.Equal(t, "flour", parsed[0].Name)
	assert.Equal(t, ingredient.CategoryPantry, parsed[0].Category)

	assert.Nil(t, parsed[1].Quantity)
}

func TestParseCmd_ReadsStdin(t *testing.T) {
	out, err := execute(t, "1 onion\n\n  \n2 eggs\n", "parse")
	require.NoError(t, err)

	var parsed []ingredient.Parsed
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "onion", parsed[0].Name)
	assert.Equal(t, "eggs", parsed[1].Name)
}

func TestGroupCmd(t *testing.T) {
	out, err := execute(t, "1 cup flour\n2 tomatoes\n2 cups flour\n", "group")
	require.NoError(t, err)

	var groups []groupView
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	assert.Equal(t, []groupView{
		{Category: "Produce", Items: []string{"2 tomatoes"}},
		{Category: "Pantry", Items: []string{"3 cup flour"}},
	}, groups)
}

func TestRecipeCmd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script type="application/ld+json">{"@type":"Recipe","name":"Omelette","recipeYield":"1","recipeIngredient":["3 eggs","1 tbsp butter"],"recipeInstructions":"Whisk and cook."}</script>`)
	}))
	defer site.Close()

	out, err := execute(t, "", "recipe", site.URL)
	require.NoError(t, err)

	var view recipeView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Omelette", view.Name)
	assert.Equal(t, []string{"Whisk and cook."}, view.Instructions)
	require.Len(t, view.Ingredients, 2)
	assert.Equal(t, "butter", view.Ingredients[1].Name)
}

func TestRecipeCmd_InvalidURL(t *testing.T) {
	_, err := execute(t, "", "recipe", "not a url")
	assert.Error(t, err)
}

func TestListCmd_RequiresToken(t *testing.T) {
	t.Setenv(envToken, "")
	_, err := execute(t, "", "list", "--server", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}
