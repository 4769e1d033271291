package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const shoppingListFileName = "shopping_list.txt"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actorID, actorRole string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, actorID, actorRole string) error
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
		DownloadShoppingCart(ctx context.Context, userID string) (string, []byte, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, ingredients, err := s.resolveAggregate(ctx, req.CookingTime, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	lines := buildLines(recipe.ID, ingredients, req.Ingredients)
	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, tags, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actorID, actorRole string) (domain.RecipeResponse, error) {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if existing.AuthorID.String() != actorID && actorRole != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	tags, ingredients, err := s.resolveAggregate(ctx, req.CookingTime, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	existing.Name = req.Name
	existing.Text = req.Text
	existing.CookingTime = req.CookingTime

	if req.Image != "" {
		imageURL, err := s.uploadImage(existing.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		existing.ImageURL = imageURL
	}

	lines := buildLines(existing.ID, ingredients, req.Ingredients)
	if err := s.recipeRepository.UpdateRecipe(ctx, existing, tags, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, actorID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, actorID, actorRole string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID.String() != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrNotRecipeAuthor
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipe)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		isFavorited, isInCart, err := s.viewerFlags(ctx, recipe.ID, viewerID)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, toRecipeResponse(recipe, isFavorited, isInCart))
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	isFavorited, isInCart, err := s.viewerFlags(ctx, recipe.ID, viewerID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe, isFavorited, isInCart), nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	return s.addEntry(ctx, recipeID, userID,
		s.recipeRepository.IsFavorited,
		s.recipeRepository.CreateFavorite,
		domain.ErrAlreadyFavorited,
	)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	return s.removeEntry(ctx, recipeID, userID, s.recipeRepository.DeleteFavorite, domain.ErrNotFavorited)
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	return s.addEntry(ctx, recipeID, userID,
		s.recipeRepository.IsInCart,
		s.recipeRepository.CreateCartEntry,
		domain.ErrAlreadyInCart,
	)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	return s.removeEntry(ctx, recipeID, userID, s.recipeRepository.DeleteCartEntry, domain.ErrNotInCart)
}

// DownloadShoppingCart renders the aggregated cart as a plain-text attachment.
// The document format (checkbox lines, header and footer) is a stable contract
// with the frontend and stays in Russian.
func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID string) (string, []byte, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", nil, domain.ErrParseUUID
	}

	items, err := s.recipeRepository.SumCartIngredients(ctx, userUUID)
	if err != nil {
		return "", nil, err
	}

	return shoppingListFileName, renderShoppingList(items), nil
}

func renderShoppingList(items []domain.ShoppingListItem) []byte {
	var b strings.Builder
	if len(items) == 0 {
		b.WriteString("Ваш список покупок пуст\n")
		return []byte(b.String())
	}

	caser := cases.Title(language.Und)
	b.WriteString("Список продуктов к покупке:\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("☐ %s (%s) - %d\n",
			caser.String(item.Name), item.MeasurementUnit, item.Total))
	}
	b.WriteString("\nПроект Foodgram от Gostinci\n")
	return []byte(b.String())
}

// resolveAggregate runs the recipe-body validations in contract order and
// resolves every referenced tag and ingredient against the catalog.
func (s *recipeService) resolveAggregate(ctx context.Context, cookingTime int, tagIDs []string, items []domain.RecipeIngredientRequest) ([]*entities.Tag, []*entities.Ingredient, error) {
	if cookingTime < 1 {
		return nil, nil, domain.ErrCookingTimeTooShort
	}
	if len(items) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, nil, domain.ErrIngredientDuplicated
		}
		seen[item.ID] = true
	}
	for _, item := range items {
		if item.Amount < 1 {
			return nil, nil, domain.ErrAmountTooSmall
		}
	}

	ingredients := make([]*entities.Ingredient, 0, len(items))
	for _, item := range items {
		ingredient, err := s.catalogRepository.GetIngredientByID(ctx, item.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, domain.ErrIngredientNotFound
			}
			return nil, nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	tags := make([]*entities.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := s.catalogRepository.GetTagByID(ctx, tagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, domain.ErrTagNotFound
			}
			return nil, nil, err
		}
		tags = append(tags, tag)
	}

	return tags, ingredients, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, dataURI string) (string, error) {
	objectKey, err := s.s3.UploadBase64(recipeID.String(), dataURI, "recipes/images")
	if err != nil {
		if errors.Is(err, storage.ErrInvalidDataURI) || errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return "", domain.ErrInvalidImage
		}
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) viewerFlags(ctx context.Context, recipeID uuid.UUID, viewerID string) (bool, bool, error) {
	if viewerID == "" {
		return false, false, nil
	}
	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return false, false, domain.ErrParseUUID
	}

	isFavorited, err := s.recipeRepository.IsFavorited(ctx, viewerUUID, recipeID)
	if err != nil {
		return false, false, err
	}
	isInCart, err := s.recipeRepository.IsInCart(ctx, viewerUUID, recipeID)
	if err != nil {
		return false, false, err
	}
	return isFavorited, isInCart, nil
}

func (s *recipeService) addEntry(
	ctx context.Context,
	recipeID, userID string,
	exists func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error),
	create func(ctx context.Context, userID, recipeID uuid.UUID) error,
	conflict error,
) (domain.ShortRecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	present, err := exists(ctx, userUUID, recipe.ID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if present {
		return domain.ShortRecipeResponse{}, conflict
	}

	if err := create(ctx, userUUID, recipe.ID); err != nil {
		// The unique index settles concurrent adds for the same pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipeResponse{}, conflict
		}
		return domain.ShortRecipeResponse{}, err
	}

	return domain.ShortRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *recipeService) removeEntry(
	ctx context.Context,
	recipeID, userID string,
	remove func(ctx context.Context, userID, recipeID uuid.UUID) (int64, error),
	missing error,
) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	affected, err := remove(ctx, userUUID, recipeUUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}

func buildLines(recipeID uuid.UUID, ingredients []*entities.Ingredient, items []domain.RecipeIngredientRequest) []*entities.RecipeIngredient {
	lines := make([]*entities.RecipeIngredient, 0, len(items))
	for i, item := range items {
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: ingredients[i].ID,
			Amount:       item.Amount,
			Position:     i,
		})
	}
	return lines
}

func toRecipeResponse(recipe *entities.Recipe, isFavorited, isInCart bool) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		res := domain.RecipeIngredientResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			res.Name = line.Ingredient.Name
			res.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, res)
	}

	author := domain.UserResponse{}
	if recipe.Author != nil {
		author = domain.UserResponse{
			ID:        recipe.Author.ID.String(),
			Username:  recipe.Author.Username,
			Email:     recipe.Author.Email,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		ImageURL:         recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}
