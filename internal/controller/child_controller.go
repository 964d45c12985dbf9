package controller

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/service"
	"aba_assessment_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ChildController struct {
	ChildService *service.ChildService
}

func NewChildController(childService *service.ChildService) *ChildController {
	return &ChildController{ChildService: childService}
}

// swagger:model ChildRequest
type ChildRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Notes       string `json:"notes"`
}

func parseDateOfBirth(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create godoc
// @Summary Register a child
// @Description Parents register their own children; the caller becomes the child's parent.
// @Tags children
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ChildRequest true "Child details"
// @Success 201 {object} util.Response{data=model.Child}
// @Failure 400 {object} util.Response
// @Router /api/children [post]
func (c *ChildController) Create(ctx *gin.Context) {
	var req ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		util.BadRequest(ctx, "dateOfBirth must be YYYY-MM-DD")
		return
	}

	claims := util.GetUserFromContext(ctx)
	child := &model.Child{
		Name:        req.Name,
		DateOfBirth: dob,
		ParentID:    claims.UserID,
		Notes:       req.Notes,
	}

	if err := c.ChildService.Create(child); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, child)
}

// List godoc
// @Summary List children
// @Description Parents see their own children; clinicians and admins see all.
// @Tags children
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=object}
// @Router /api/children [get]
func (c *ChildController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	children, total, err := c.ChildService.ListForUser(claims, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"children": children,
		"total":    total,
	})
}

// Get godoc
// @Summary Get a child
// @Tags children
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Child ID"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [get]
func (c *ChildController) Get(ctx *gin.Context) {
	child, err := c.ChildService.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrChildNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if !c.ChildService.CanAccess(claims, child) {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, child)
}

// Update godoc
// @Summary Update a child
// @Tags children
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "Child ID"
// @Param   body body ChildRequest true "Updated details"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [put]
func (c *ChildController) Update(ctx *gin.Context) {
	var req ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		util.BadRequest(ctx, "dateOfBirth must be YYYY-MM-DD")
		return
	}

	claims := util.GetUserFromContext(ctx)
	child, err := c.ChildService.Update(claims, ctx.Param("id"), &model.Child{
		Name:        req.Name,
		DateOfBirth: dob,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChildNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, child)
}

// Delete godoc
// @Summary Delete a child
// @Tags children
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Child ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [delete]
func (c *ChildController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ChildService.Delete(claims, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrChildNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
