package budgeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finansmart/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// resolveCategory returns the one category of the user for the input.
//
// A category with the same name wins over the ID in the input: it is
// returned unchanged. Otherwise, the category with the ID is updated to the
// input, or a new category is created when the input has no ID.
func resolveCategory(tx *gorm.DB, userID uuid.UUID, in CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Category{}, ErrCategoryNameEmpty
	}

	var category models.Category
	err := tx.Where(&models.Category{UserID: userID, Name: name}).First(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Category{}, err
	}

	if in.ID != nil && *in.ID != uuid.Nil {
		err = tx.Where(&models.Category{UserID: userID}).First(&category, "id = ?", *in.ID).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.Category{}, fmt.Errorf("%w: category %s", models.ErrInvalidReference, *in.ID)
		}
		if err != nil {
			return models.Category{}, err
		}

		category.Name = name
		category.Color = in.Color
		category.Icon = in.Icon

		err = tx.Omit(clause.Associations).Save(&category).Error
		if err != nil {
			return models.Category{}, err
		}

		return category, nil
	}

	category = models.Category{
		UserID: userID,
		Name:   name,
		Color:  in.Color,
		Icon:   in.Icon,
	}

	err = tx.Omit(clause.Associations).Create(&category).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// checkCategoryOwner verifies that the category exists and belongs to the user.
func checkCategoryOwner(tx *gorm.DB, userID, categoryID uuid.UUID) error {
	var count int64
	err := tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", categoryID, userID).Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("%w: category %s", models.ErrInvalidReference, categoryID)
	}

	return nil
}

// ResolveCategory finds or creates the category of the user for the input.
func (s *Service) ResolveCategory(ctx context.Context, userID uuid.UUID, in CategoryInput) (models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = resolveCategory(tx, userID, in)
		return err
	})

	return category, err
}

// CreateCategory creates a category for the user. Names must be unique per user.
func (s *Service) CreateCategory(ctx context.Context, userID uuid.UUID, in CategoryInput) (models.Category, error) {
	category := models.Category{
		UserID: userID,
		Name:   strings.TrimSpace(in.Name),
		Color:  in.Color,
		Icon:   in.Icon,
	}

	if category.Name == "" {
		return models.Category{}, ErrCategoryNameEmpty
	}

	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&category).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// GetCategory returns a category of the user.
func (s *Service) GetCategory(ctx context.Context, userID, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where(&models.Category{UserID: userID}).First(&category, "id = ?", id).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// ListCategories returns all categories of the user, newest first.
func (s *Service) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Where(&models.Category{UserID: userID}).Order("created_at DESC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// UpdateCategory updates a category of the user.
func (s *Service) UpdateCategory(ctx context.Context, userID, id uuid.UUID, patch CategoryPatch) (models.Category, error) {
	category, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return models.Category{}, err
	}

	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
		if category.Name == "" {
			return models.Category{}, ErrCategoryNameEmpty
		}
	}

	if patch.Color != nil {
		category.Color = patch.Color
	}

	if patch.Icon != nil {
		category.Icon = patch.Icon
	}

	err = s.db.WithContext(ctx).Omit(clause.Associations).Save(&category).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// DeleteCategory deletes a category of the user. Categories that are still
// used by expenses cannot be deleted.
func (s *Service) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&category).Error
}
