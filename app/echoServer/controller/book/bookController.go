package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"libraryservice/app/echoServer/validation"
	"libraryservice/model"
	booksvc "libraryservice/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validation.Validator
	Log *slog.Logger
}

// List books
// @Summary  List books
// @Tags     books
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/books [get]
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "book list error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "book detail error", err)
	}
	return c.JSON(http.StatusOK, row)
}

// Create book
// @Summary   Create book (staff)
// @Tags      books
// @Accept    json
// @Produce   json
// @Param     payload  body  BookReq  true  "Book"
// @Success   201  {object}  model.Book
// @Failure   400  {object}  map[string]any
// @Failure   401  {object}  map[string]any
// @Failure   403  {object}  map[string]any
// @Security  BearerAuth
// @Router    /api/books [post]
func (h *Controller) Create(c echo.Context) error {
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Validate(req); err != nil {
		return validationError(c, validation.Errors(err))
	}
	b := &model.Book{}
	req.apply(b)
	if err := h.Svc.Create(c.Request().Context(), b); err != nil {
		return h.fail(c, "book create error", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /api/books/:id  (staff)
func (h *Controller) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Validate(req); err != nil {
		return validationError(c, validation.Errors(err))
	}
	b, err := h.Svc.Update(c.Request().Context(), id, req.apply)
	if err != nil {
		return h.fail(c, "book update error", err)
	}
	return c.JSON(http.StatusOK, b)
}

// PATCH /api/books/:id  (staff)
func (h *Controller) Patch(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req PatchBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Validate(req); err != nil {
		return validationError(c, validation.Errors(err))
	}
	b, err := h.Svc.Update(c.Request().Context(), id, req.apply)
	if err != nil {
		return h.fail(c, "book patch error", err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id  (staff)
func (h *Controller) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "book delete error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) fail(c echo.Context, msg string, err error) error {
	switch booksvc.Code(err) {
	case booksvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case booksvc.ErrInvalid:
		return validationError(c, booksvc.Fields(err))
	}
	h.Log.Error(msg, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func validationError(c echo.Context, fields model.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": fields})
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
