package repository

import (
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/models"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByName finds a label by its unique name
func (r *GormLabelRepository) FindByName(name string) (*models.Label, error) {
	var label models.Label
	if err := r.db.Where("name = ?", name).First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByIDs loads the labels with the given IDs. A missing ID is not an
// error; callers compare lengths when they need all of them.
func (r *GormLabelRepository) FindByIDs(ids []uint64) ([]models.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var labels []models.Label
	if err := r.db.Where("id IN ?", ids).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// List retrieves all labels in insertion order
func (r *GormLabelRepository) List() ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Order("id").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update persists changes to a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label unless a task still carries it. The join table
// is consulted and the row deleted in one transaction.
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Table("task_labels").
			Where("label_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrProtected
		}

		return tx.Delete(&models.Label{}, id).Error
	})
}
