package catalog

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCatalogRepository struct {
	tags        []*entities.Tag
	ingredients []*entities.Ingredient
}

func (f *fakeCatalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	return f.tags, nil
}

func (f *fakeCatalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	for _, tag := range f.tags {
		if tag.ID.String() == id {
			return tag, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.ID.String() == id {
			return ingredient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) SearchIngredients(ctx context.Context, name string) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, ingredient := range f.ingredients {
		if name == "" || strings.HasPrefix(ingredient.Name, name) {
			res = append(res, ingredient)
		}
	}
	return res, nil
}

func TestGetTagsProjection(t *testing.T) {
	repo := &fakeCatalogRepository{
		tags: []*entities.Tag{
			{ID: uuid.New(), Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		},
	}
	service := NewCatalogService(repo)

	tags, err := service.GetTags(context.Background())
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if tags[0].Slug != "breakfast" || tags[0].Color != "#E26C2D" {
		t.Fatalf("unexpected tag projection: %+v", tags[0])
	}
}

func TestGetTagByIDNotFound(t *testing.T) {
	service := NewCatalogService(&fakeCatalogRepository{})

	if _, err := service.GetTagByID(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestGetIngredientsPrefixSearch(t *testing.T) {
	repo := &fakeCatalogRepository{
		ingredients: []*entities.Ingredient{
			{ID: uuid.New(), Name: "мука", MeasurementUnit: "г"},
			{ID: uuid.New(), Name: "молоко", MeasurementUnit: "мл"},
			{ID: uuid.New(), Name: "сахар", MeasurementUnit: "г"},
		},
	}
	service := NewCatalogService(repo)

	res, err := service.GetIngredients(context.Background(), "м")
	if err != nil {
		t.Fatalf("get ingredients: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 matches for prefix, got %d", len(res))
	}

	all, err := service.GetIngredients(context.Background(), "")
	if err != nil {
		t.Fatalf("get ingredients: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty query must list everything, got %d", len(all))
	}
}

func TestGetIngredientByIDNotFound(t *testing.T) {
	service := NewCatalogService(&fakeCatalogRepository{})

	if _, err := service.GetIngredientByID(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
