package seeder

import (
	"Foodgram-Backend/entities"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedFile struct {
	Tags []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
		Slug  string `yaml:"slug"`
	} `yaml:"tags"`
	Ingredients []struct {
		Name            string `yaml:"name"`
		MeasurementUnit string `yaml:"measurement_unit"`
	} `yaml:"ingredients"`
}

// Seed loads the tag and ingredient reference data from a YAML file.
// Existing rows are kept; re-running the seeder is safe.
func Seed(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var data seedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	for _, t := range data.Tags {
		tag := entities.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return fmt.Errorf("seeding tag %q: %w", t.Name, err)
		}
	}
	for _, i := range data.Ingredients {
		ingredient := entities.Ingredient{Name: i.Name, MeasurementUnit: i.MeasurementUnit}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient).Error; err != nil {
			return fmt.Errorf("seeding ingredient %q: %w", i.Name, err)
		}
	}

	fmt.Printf("Seeded %d tags and %d ingredients\n", len(data.Tags), len(data.Ingredients))
	return nil
}
