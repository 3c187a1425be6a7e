package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/factory_registry/pkg/logging"

	"github.com/Skotchmaster/factory_registry/internal/domain"
	"github.com/Skotchmaster/factory_registry/internal/service"
	"github.com/Skotchmaster/factory_registry/internal/util"
)

type EntityHTTP[M service.Keyed, P service.Payload[M]] struct {
	Svc *service.EntityService[M, P]
}

func (h *EntityHTTP[M, P]) logger(c echo.Context, op string) *slog.Logger {
	return logging.FromContext(c.Request().Context()).With("handler", h.Svc.Desc.Kind+"."+op)
}

func (h *EntityHTTP[M, P]) event(op string) string {
	return op + "_" + h.Svc.Desc.Kind + "_failed"
}

// parseID accepts ids that fit a signed bigint column.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *EntityHTTP[M, P]) id(c echo.Context, l *slog.Logger, op string) (uint, error) {
	id, err := parseID(c)
	if err != nil {
		l.Warn(h.event(op), "status", http.StatusBadRequest, "reason", "id is not a positive integer", "error", err)
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	return id, nil
}

func (h *EntityHTTP[M, P]) bind(c echo.Context, l *slog.Logger, op string) (P, error) {
	var req P
	if err := c.Bind(&req); err != nil {
		l.Warn(h.event(op), "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn(h.event(op), "status", http.StatusBadRequest, "reason", "validation failed", "error", err)
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid body: "+err.Error())
	}
	return req, nil
}

// fail maps service errors onto HTTP errors.
func (h *EntityHTTP[M, P]) fail(l *slog.Logger, op string, err error) error {
	d := h.Svc.Desc
	switch {
	case errors.Is(err, domain.ErrNotFound):
		l.Warn(h.event(op), "status", http.StatusNotFound, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, d.NotFoundMessage())
	case errors.Is(err, domain.ErrConflict):
		l.Warn(h.event(op), "status", http.StatusBadRequest, "reason", "unique constraint", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, d.ConflictMessage)
	case errors.Is(err, domain.ErrValidation):
		l.Warn(h.event(op), "status", http.StatusBadRequest, "reason", "invalid reference", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(h.event(op), "status", http.StatusInternalServerError, "reason", "db failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot "+op+" "+d.Kind)
	}
}

func (h *EntityHTTP[M, P]) Get(c echo.Context) error {
	l := h.logger(c, "get")
	id, err := h.id(c, l, "get")
	if err != nil {
		return err
	}

	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(l, "get", err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *EntityHTTP[M, P]) List(c echo.Context) error {
	l := h.logger(c, "list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return h.fail(l, "list", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EntityHTTP[M, P]) Create(c echo.Context) error {
	l := h.logger(c, "create")
	req, err := h.bind(c, l, "create")
	if err != nil {
		return err
	}

	row, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return h.fail(l, "create", err)
	}

	l.Info("create_"+h.Svc.Desc.Kind+"_success", "id", (*row).Key())
	return c.JSON(http.StatusOK, row)
}

func (h *EntityHTTP[M, P]) Update(c echo.Context) error {
	l := h.logger(c, "update")
	id, err := h.id(c, l, "update")
	if err != nil {
		return err
	}
	req, err := h.bind(c, l, "update")
	if err != nil {
		return err
	}

	row, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(l, "update", err)
	}

	l.Info("update_"+h.Svc.Desc.Kind+"_success", "id", id)
	return c.JSON(http.StatusOK, row)
}

func (h *EntityHTTP[M, P]) Delete(c echo.Context) error {
	l := h.logger(c, "delete")
	id, err := h.id(c, l, "delete")
	if err != nil {
		return err
	}

	row, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return h.fail(l, "delete", err)
	}

	l.Info("delete_"+h.Svc.Desc.Kind+"_success", "id", id)
	return c.JSON(http.StatusOK, row)
}
