package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/accounts-api/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// CrudHandler is the generic HTTP endpoint set over an entity service.
// Entity-specific handlers compose it: List, GetByID, and Delete are
// endpoints as-is, while Create and Update take an already-decoded entity so
// the wrapper can hash fields or force roles first.
type CrudHandler[T any, PT ports.Entity[T]] struct {
	service ports.EntityService[T, PT]
}

func NewCrudHandler[T any, PT ports.Entity[T]](service ports.EntityService[T, PT]) *CrudHandler[T, PT] {
	return &CrudHandler[T, PT]{service: service}
}

// List handles GET /?page&pageSize with 1-based pagination.
func (h *CrudHandler[T, PT]) List(c echo.Context) error {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), page, pageSize, ports.ListQuery{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID handles GET /:id.
func (h *CrudHandler[T, PT]) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	entity, err := h.service.GetByID(c.Request().Context(), id, ports.ListQuery{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entity)
}

// Create persists a decoded entity and renders it with 201.
func (h *CrudHandler[T, PT]) Create(c echo.Context, entity PT) error {
	if err := h.service.Add(c.Request().Context(), entity); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entity)
}

// Update persists a decoded entity under the URL's id, discarding any id the
// body may have carried, and renders the result with 200.
func (h *CrudHandler[T, PT]) Update(c echo.Context, entity PT) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	entity.SetID(id)

	if err := h.service.Update(c.Request().Context(), entity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entity)
}

// Delete handles DELETE /:id.
func (h *CrudHandler[T, PT]) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
