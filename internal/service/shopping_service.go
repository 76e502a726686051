package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/metrics"
	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/shopping"
	"github.com/mmynk/yolksters/internal/storage"
	"github.com/mmynk/yolksters/pkg/api"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
)

// Ensure ShoppingService implements the Connect handler interface
var _ apiconnect.ShoppingListServiceHandler = (*ShoppingService)(nil)

var (
	errNoIngredients = errors.New("at least one ingredient is required")
	errMissingItemID = errors.New("item_id is required")
)

// ShoppingService implements the Connect ShoppingListService.
type ShoppingService struct {
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	locks   *userLocks
}

// NewShoppingService creates a new ShoppingService with the given storage backend.
func NewShoppingService(store storage.Store, logger *slog.Logger, m *metrics.Metrics) *ShoppingService {
	return &ShoppingService{
		store:   store,
		logger:  logger,
		metrics: m,
		locks:   newUserLocks(),
	}
}

// AddIngredients parses the lines, merges them into the caller's list and
// returns the updated list. The fetch, merge and write run under the
// caller's lock so concurrent requests never lose a merge.
func (s *ShoppingService) AddIngredients(ctx context.Context, req *connect.Request[api.AddIngredientsRequest]) (*connect.Response[api.AddIngredientsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	parsed := shopping.ParseLines(req.Msg.Ingredients)
	if len(parsed) == 0 {
		s.logger.Warn("AddIngredients rejected", "user_id", userID, "error", errNoIngredients)
		return nil, connect.NewError(connect.CodeInvalidArgument, errNoIngredients)
	}

	for _, p := range parsed {
		s.logger.Debug("Parsed ingredient",
			"original", p.Original,
			"item", p.Item(),
			"name", p.Name,
			"category", p.Category,
		)
		s.metrics.ObserveParsed(string(p.Category))
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	existing, err := s.store.FetchItems(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "FetchItems", err)
	}

	plan := shopping.ReconcileParsed(existing, parsed)
	if err := s.store.ApplyChanges(ctx, userID, plan.Updates, plan.Inserts); err != nil {
		return nil, storageError(s.logger, "ApplyChanges", err)
	}
	s.metrics.ObserveReconcile(len(plan.Updates), len(plan.Inserts))

	items, err := s.store.FetchItems(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "FetchItems", err)
	}

	s.logger.Info("Ingredients added",
		"user_id", userID,
		"lines", len(parsed),
		"updated", len(plan.Updates),
		"inserted", len(plan.Inserts),
	)

	return connect.NewResponse(&api.AddIngredientsResponse{
		Updated:  len(plan.Updates),
		Inserted: len(plan.Inserts),
		Groups:   toAPIGroups(shopping.GroupByCategory(items)),
	}), nil
}

// ListItems returns the caller's list grouped by category.
func (s *ShoppingService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.store.FetchItems(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "FetchItems", err)
	}

	return connect.NewResponse(&api.ListItemsResponse{
		Groups:       toAPIGroups(shopping.GroupByCategory(items)),
		TotalItems:   len(items),
		CheckedItems: countChecked(items),
	}), nil
}

// SetItemChecked checks or unchecks one row.
func (s *ShoppingService) SetItemChecked(ctx context.Context, req *connect.Request[api.SetItemCheckedRequest]) (*connect.Response[api.SetItemCheckedResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingItemID)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.store.SetChecked(ctx, userID, req.Msg.ItemID, req.Msg.Checked); err != nil {
		return nil, storageError(s.logger, "SetChecked", err)
	}

	s.logger.Info("Item checked", "user_id", userID, "item_id", req.Msg.ItemID, "checked", req.Msg.Checked)
	return connect.NewResponse(&api.SetItemCheckedResponse{}), nil
}

// SetAllChecked checks or unchecks every row.
func (s *ShoppingService) SetAllChecked(ctx context.Context, req *connect.Request[api.SetAllCheckedRequest]) (*connect.Response[api.SetAllCheckedResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	n, err := s.store.BulkSetChecked(ctx, userID, req.Msg.Checked)
	if err != nil {
		return nil, storageError(s.logger, "BulkSetChecked", err)
	}

	s.logger.Info("All items checked", "user_id", userID, "checked", req.Msg.Checked, "affected", n)
	return connect.NewResponse(&api.SetAllCheckedResponse{Affected: n}), nil
}

// DeleteItem removes one row.
func (s *ShoppingService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingItemID)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.store.DeleteItem(ctx, userID, req.Msg.ItemID); err != nil {
		return nil, storageError(s.logger, "DeleteItem", err)
	}

	s.logger.Info("Item deleted", "user_id", userID, "item_id", req.Msg.ItemID)
	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// DeleteChecked removes every checked row.
func (s *ShoppingService) DeleteChecked(ctx context.Context, req *connect.Request[api.DeleteCheckedRequest]) (*connect.Response[api.DeleteCheckedResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	n, err := s.store.DeleteChecked(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "DeleteChecked", err)
	}

	s.logger.Info("Checked items deleted", "user_id", userID, "deleted", n)
	return connect.NewResponse(&api.DeleteCheckedResponse{Deleted: n}), nil
}

// ParseIngredients previews how lines would be parsed. Nothing is stored.
func (s *ShoppingService) ParseIngredients(ctx context.Context, req *connect.Request[api.ParseIngredientsRequest]) (*connect.Response[api.ParseIngredientsResponse], error) {
	parsed := make([]*api.ParsedIngredient, len(req.Msg.Ingredients))
	for i, line := range req.Msg.Ingredients {
		p := ingredient.Parse(line)
		s.metrics.ObserveParsed(string(p.Category))
		parsed[i] = toAPIParsed(p)
	}
	return connect.NewResponse(&api.ParseIngredientsResponse{Ingredients: parsed}), nil
}

func countChecked(items []models.ShoppingListItem) int {
	n := 0
	for _, item := range items {
		if item.Checked {
			n++
		}
	}
	return n
}
