package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error)
		IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IsInCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		CreateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		DeleteFavorite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		CreateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error
		DeleteCartEntry(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		SumCartIngredients(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Append(tags); err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRecipe rewrites the whole aggregate: tag links and ingredient lines
// are cleared and recreated from the supplied sets, never diffed.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{ID: recipe.ID}).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image_url":    recipe.ImageURL,
				"cooking_time": recipe.CookingTime,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Recipe{ID: recipe.ID}).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.ShoppingCartRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position asc")
		}).
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	base := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if filter.AuthorID != "" {
		base = base.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		base = base.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	// Membership filters never match for an anonymous viewer.
	if filter.IsFavorited {
		if viewerID == "" {
			return []*entities.Recipe{}, 0, nil
		}
		base = base.
			Joins("JOIN favorite_recipes ON favorite_recipes.recipe_id = recipes.id").
			Where("favorite_recipes.user_id = ?", viewerID)
	}
	if filter.IsInShoppingCart {
		if viewerID == "" {
			return []*entities.Recipe{}, 0, nil
		}
		base = base.
			Joins("JOIN shopping_cart_recipes ON shopping_cart_recipes.recipe_id = recipes.id").
			Where("shopping_cart_recipes.user_id = ?", viewerID)
	}

	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position asc")
		}).
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(filter.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCartRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	favorite := entities.FavoriteRecipe{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) DeleteFavorite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.FavoriteRecipe{})
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) CreateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	entry := entities.ShoppingCartRecipe{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *recipeRepository) DeleteCartEntry(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCartRecipe{})
	return res.RowsAffected, res.Error
}

// SumCartIngredients groups the line items of every recipe in the user's cart
// by (name, unit) and sums the amounts, ordered name-ascending. The list is
// recomputed from the cart on every call.
func (r *recipeRepository) SumCartIngredients(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_recipes ON shopping_cart_recipes.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_recipes.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
