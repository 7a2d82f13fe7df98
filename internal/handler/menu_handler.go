package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "supanos/internal/errors"
	"supanos/internal/repository"
	"supanos/internal/service"
)

// MenuHandler serves menu categories and items.
type MenuHandler struct {
	svc service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// ListCategories godoc
// @Summary List menu categories
// @Tags menu
// @Produce json
// @Success 200 {array} model.MenuCategory
// @Router /menu/categories [get]
func (h *MenuHandler) ListCategories(c echo.Context) error {
	categories, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return fail(c, "list categories", err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create menu category
// @Tags menu
// @Accept json
// @Produce json
// @Param category body service.CategoryRequest true "Category"
// @Success 200 {object} model.MenuCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /menu/categories [post]
func (h *MenuHandler) CreateCategory(c echo.Context) error {
	var req service.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.svc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return fail(c, "create category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary Update menu category
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body service.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} model.MenuCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/categories/{id} [patch]
func (h *MenuHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req service.UpdateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.svc.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, "update category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete menu category
// @Description Refused with 409 while items still belong to the category.
// @Tags menu
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /menu/categories/{id} [delete]
func (h *MenuHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return fail(c, "delete category", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ListItems godoc
// @Summary List menu items
// @Tags menu
// @Produce json
// @Param categoryId query string false "Only items of this category"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {array} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /menu/items [get]
func (h *MenuHandler) ListItems(c echo.Context) error {
	var filter repository.MenuItemFilter
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid categoryId")
		}
		filter.CategoryID = &id
	}
	filter.Search = c.QueryParam("search")

	items, err := h.svc.ListItems(c.Request().Context(), filter)
	if err != nil {
		return fail(c, "list items", err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get menu item
// @Tags menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} model.MenuItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/items/{id} [get]
func (h *MenuHandler) GetItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return fail(c, "get item", err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param item body service.MenuItemRequest true "Menu item"
// @Success 200 {object} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /menu/items [post]
func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req service.MenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.CreateItem(c.Request().Context(), req)
	if err != nil {
		return fail(c, "create item", err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary Update menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body service.UpdateMenuItemRequest true "Fields to change"
// @Success 200 {object} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/items/{id} [patch]
func (h *MenuHandler) UpdateItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req service.UpdateMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.UpdateItem(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, "update item", err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete menu item
// @Tags menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} SuccessResponse
// @Router /menu/items/{id} [delete]
func (h *MenuHandler) DeleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		return fail(c, "delete item", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
