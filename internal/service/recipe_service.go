package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/middleware"
	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/recipe"
	"github.com/mmynk/yolksters/pkg/api"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

// Ensure RecipeService implements the Connect handler interface
var _ apiconnect.RecipeServiceHandler = (*RecipeService)(nil)

// RecipeFetcher downloads a page and extracts its recipe.
type RecipeFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*models.Recipe, error)
}

// RecipeService implements the Connect RecipeService.
type RecipeService struct {
	fetcher RecipeFetcher
	logger  *slog.Logger
}

// NewRecipeService creates a RecipeService backed by the given fetcher.
func NewRecipeService(fetcher RecipeFetcher, logger *slog.Logger) *RecipeService {
	return &RecipeService{fetcher: fetcher, logger: logger}
}

// FetchRecipe downloads the page at the requested URL and returns its recipe
// along with the parsed ingredient lines. Authentication is optional.
func (s *RecipeService) FetchRecipe(ctx context.Context, req *connect.Request[api.FetchRecipeRequest]) (*connect.Response[api.FetchRecipeResponse], error) {
	userID := middleware.GetUserID(ctx)
	s.logger.Info("Fetching recipe", "url", req.Msg.URL, "user_id", userID)

	if req.Msg.URL == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: url is required", recipe.ErrInvalidURL))
	}

	r, err := s.fetcher.Fetch(ctx, req.Msg.URL)
	if err != nil {
		return nil, s.fetchError(req.Msg.URL, err)
	}

	parsed := make([]*api.ParsedIngredient, len(r.Ingredients))
	for i, line := range r.Ingredients {
		parsed[i] = toAPIParsed(ingredient.Parse(line))
	}

	s.logger.Info("Recipe fetched", "url", req.Msg.URL, "name", r.Name, "ingredients", len(r.Ingredients))
	return connect.NewResponse(&api.FetchRecipeResponse{
		Recipe: toAPIRecipe(r),
		Parsed: parsed,
	}), nil
}

func (s *RecipeService) fetchError(url string, err error) error {
	var statusErr *recipe.StatusError
	switch {
	case errors.Is(err, recipe.ErrInvalidURL):
		s.logger.Warn("Invalid recipe URL", "url", url, "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &statusErr):
		s.logger.Warn("Recipe site error", "url", url, "status", statusErr.StatusCode)
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, recipe.ErrRecipeNotFound):
		s.logger.Warn("No recipe on page", "url", url)
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		s.logger.Error("Recipe fetch failed", "url", url, "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("failed to fetch recipe"))
	}
}
