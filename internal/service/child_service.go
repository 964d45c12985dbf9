package service

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/repository"
	"aba_assessment_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ChildService struct {
	ChildRepo *repository.ChildRepository
}

func NewChildService(childRepo *repository.ChildRepository) *ChildService {
	return &ChildService{ChildRepo: childRepo}
}

func (s *ChildService) Create(child *model.Child) error {
	return s.ChildRepo.Create(child)
}

func (s *ChildService) GetByID(id string) (*model.Child, error) {
	child, err := s.ChildRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChildNotFound
		}
		return nil, err
	}
	return child, nil
}

// ListForUser scopes the result by role: parents see only their own
// children, clinicians and admins see everyone.
func (s *ChildService) ListForUser(claims *util.Claims, page, limit int) ([]model.Child, int64, error) {
	if claims.Role == model.Parent {
		children, err := s.ChildRepo.ListByParent(claims.UserID)
		return children, int64(len(children)), err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ChildRepo.List(page, limit)
}

// CanAccess reports whether the caller may read or modify the child.
func (s *ChildService) CanAccess(claims *util.Claims, child *model.Child) bool {
	if claims.Role == model.Clinician || claims.Role == model.Admin {
		return true
	}
	return child.ParentID == claims.UserID
}

func (s *ChildService) Update(claims *util.Claims, id string, update *model.Child) (*model.Child, error) {
	child, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.CanAccess(claims, child) {
		return nil, util.ErrPermissionDenied
	}

	child.Name = update.Name
	child.DateOfBirth = update.DateOfBirth
	child.Notes = update.Notes
	if err := s.ChildRepo.Update(child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) Delete(claims *util.Claims, id string) error {
	child, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !s.CanAccess(claims, child) {
		return util.ErrPermissionDenied
	}
	return s.ChildRepo.Delete(id)
}
