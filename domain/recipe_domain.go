package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessDownloadCart    = "success download shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedDownloadCart    = "failed to download shopping list"

	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrNotRecipeAuthor      = errors.New("only the author can modify this recipe")
	ErrCookingTimeTooShort  = errors.New("cooking time must be at least 1 minute")
	ErrNoIngredients        = errors.New("recipe must have at least one ingredient")
	ErrIngredientDuplicated = errors.New("ingredient already added")
	ErrAmountTooSmall       = errors.New("ingredient amount must be at least 1")
	ErrInvalidImage         = errors.New("invalid image payload")
	ErrAlreadyFavorited     = errors.New("recipe is already in favorites")
	ErrNotFavorited         = errors.New("recipe is not in favorites")
	ErrAlreadyInCart        = errors.New("recipe is already in shopping cart")
	ErrNotInCart            = errors.New("recipe is not in shopping cart")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image,omitempty"`
		CookingTime int                       `json:"cooking_time" validate:"required"`
		Tags        []string                  `json:"tags" validate:"required,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,dive"`
	}

	UpdateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image,omitempty"`
		CookingTime int                       `json:"cooking_time" validate:"required"`
		Tags        []string                  `json:"tags" validate:"required,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,dive"`
	}

	RecipeFilter struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		ImageURL         string                     `json:"image_url,omitempty"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
	}

	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	// ShoppingListItem is one aggregated row of the shopping list: amounts of
	// the same (name, unit) ingredient summed over every recipe in the cart.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Total           int    `json:"total"`
	}
)
