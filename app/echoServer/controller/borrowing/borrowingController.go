package borrowing

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"libraryservice/app/echoServer/jwtx"
	"libraryservice/app/echoServer/validation"
	"libraryservice/model"
	borrowingsvc "libraryservice/service/borrowing"
)

type Controller struct {
	Svc borrowingsvc.Service
	V   *validation.Validator
	Log *slog.Logger
}

func actor(c echo.Context) (borrowingsvc.Actor, bool) {
	claims, err := jwtx.ClaimsFromContext(c)
	if err != nil {
		return borrowingsvc.Actor{}, false
	}
	uid, err := claims.UserID()
	if err != nil {
		return borrowingsvc.Actor{}, false
	}
	return borrowingsvc.Actor{UserID: uid, IsStaff: claims.IsStaff}, true
}

// Create borrowing
// @Summary   Borrow a book
// @Tags      borrowings
// @Accept    json
// @Produce   json
// @Param     payload  body  CreateBorrowingReq  true  "Borrowing"
// @Success   201  {object}  BorrowingResp
// @Failure   400  {object}  map[string]any
// @Failure   401  {object}  map[string]any
// @Security  BearerAuth
// @Router    /api/borrowings [post]
func (h *Controller) Create(c echo.Context) error {
	who, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req CreateBorrowingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Validate(req); err != nil {
		return validationError(c, validation.Errors(err))
	}
	due, err := parseTimestamp(req.ExpectedReturnDate)
	if err != nil {
		return validationError(c, model.FieldErrors{"expected_return_date": {err.Error()}})
	}

	b, err := h.Svc.Create(c.Request().Context(), who, borrowingsvc.CreateReq{
		BookID:             req.Book,
		ExpectedReturnDate: due,
	})
	if err != nil {
		return h.fail(c, "borrowing create error", err)
	}
	return c.JSON(http.StatusCreated, toResp(b))
}

// List borrowings
// @Summary   List borrowings (own, or all for staff)
// @Tags      borrowings
// @Produce   json
// @Param     is_active  query  string  false  "true/yes for books not returned yet"
// @Param     user_id    query  int     false  "staff only"
// @Success   200  {object}  map[string]any
// @Security  BearerAuth
// @Router    /api/borrowings [get]
func (h *Controller) List(c echo.Context) error {
	who, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var f model.BorrowingFilter
	q := c.QueryParams()
	if v, ok := q["is_active"]; ok && len(v) > 0 {
		active := strings.EqualFold(v[0], "true") || strings.EqualFold(v[0], "yes")
		f.IsActive = &active
	}
	// user_id only means something to staff; others always see their own rows
	if v := q.Get("user_id"); who.IsStaff && v != "" {
		uid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return validationError(c, model.FieldErrors{"user_id": {"A valid integer is required."}})
		}
		f.UserID = &uid
	}

	rows, err := h.Svc.List(c.Request().Context(), who, f)
	if err != nil {
		return h.fail(c, "borrowing list error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toListResp(rows, who.IsStaff)})
}

// GET /api/borrowings/:id
func (h *Controller) Detail(c echo.Context) error {
	who, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	d, err := h.Svc.Detail(c.Request().Context(), who, id)
	if err != nil {
		return h.fail(c, "borrowing detail error", err)
	}
	return c.JSON(http.StatusOK, toDetailResp(d, who.IsStaff))
}

func (h *Controller) fail(c echo.Context, msg string, err error) error {
	switch borrowingsvc.Code(err) {
	case borrowingsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case borrowingsvc.ErrInvalid, borrowingsvc.ErrBookNotFound, borrowingsvc.ErrNoStock:
		return validationError(c, borrowingsvc.Fields(err))
	}
	h.Log.Error(msg, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func validationError(c echo.Context, fields model.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": fields})
}
