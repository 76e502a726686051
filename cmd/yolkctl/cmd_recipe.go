package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/recipe"
)

type recipeView struct {
	Name         string              `json:"name"`
	Servings     *string             `json:"servings,omitempty"`
	TotalTime    *string             `json:"total_time,omitempty"`
	Instructions []string            `json:"instructions"`
	Ingredients  []ingredient.Parsed `json:"ingredients"`
}

func newRecipeCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "recipe <url>",
		Short: "Fetch a recipe page and parse its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := recipe.NewFetcher(recipe.WithTimeout(timeout))
			r, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch recipe: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), newRecipeView(r))
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", recipe.DefaultTimeout, "HTTP timeout for the page request")
	return cmd
}

func newRecipeView(r *models.Recipe) recipeView {
	parsed := make([]ingredient.Parsed, len(r.Ingredients))
	for i, line := range r.Ingredients {
		parsed[i] = ingredient.Parse(line)
	}
	return recipeView{
		Name:         r.Name,
		Servings:     r.Servings,
		TotalTime:    r.TotalTime,
		Instructions: r.Instructions,
		Ingredients:  parsed,
	}
}
