package service

import (
	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/shopping"
	"github.com/mmynk/yolksters/pkg/api"
)

func toAPIItem(item models.ShoppingListItem) *api.ShoppingListItem {
	return &api.ShoppingListItem{
		ID:        item.ID,
		Item:      item.Item,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		Name:      item.Name,
		Category:  item.Category,
		Checked:   item.Checked,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toAPIGroups(groups []shopping.Group) []*api.CategoryGroup {
	out := make([]*api.CategoryGroup, len(groups))
	for i, g := range groups {
		items := make([]*api.ShoppingListItem, len(g.Items))
		for j, item := range g.Items {
			items[j] = toAPIItem(item)
		}
		out[i] = &api.CategoryGroup{Category: string(g.Category), Items: items}
	}
	return out
}

func toAPIParsed(p ingredient.Parsed) *api.ParsedIngredient {
	return &api.ParsedIngredient{
		Original: p.Original,
		Quantity: p.Quantity,
		Unit:     p.Unit,
		Name:     p.Name,
		Category: string(p.Category),
	}
}

func toAPIRecipe(r *models.Recipe) *api.Recipe {
	return &api.Recipe{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Servings:     r.Servings,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Image:        r.Image,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
