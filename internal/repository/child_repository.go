package repository

import (
	"aba_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.DB.Create(child).Error
}

func (r *ChildRepository) FindByID(id string) (*model.Child, error) {
	var child model.Child
	err := r.DB.Where("id = ?", id).First(&child).Error
	return &child, err
}

func (r *ChildRepository) ListByParent(parentID uint) ([]model.Child, error) {
	var children []model.Child
	err := r.DB.Where("parent_id = ?", parentID).Order("created_at desc").Find(&children).Error
	return children, err
}

func (r *ChildRepository) List(page, limit int) ([]model.Child, int64, error) {
	var children []model.Child
	var total int64
	query := r.DB.Model(&model.Child{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&children).Error
	return children, total, err
}

func (r *ChildRepository) Update(child *model.Child) error {
	return r.DB.Save(child).Error
}

func (r *ChildRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Child{}).Error
}

func (r *ChildRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Child{}).Count(&total).Error
	return total, err
}
