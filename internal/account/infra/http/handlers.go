package http

import (
	"errors"

	"github.com/cristianortiz/pointAuction/internal/account/application"
	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AccountHandler exposes the account module over HTTP.
type AccountHandler struct {
	service application.AccountService
}

func NewAccountHandler(service application.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes mounts the account routes on the fiber app.
func (h *AccountHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/accounts", h.register)
	app.Get("/accounts/:id", h.getAccount)
	app.Post("/accounts/:id/charges", h.chargePoints)
	app.Get("/accounts/:id/charges", h.chargeHistory)
	app.Put("/admin/accounts/:id/ban", h.setBan)
}

func (h *AccountHandler) register(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.service.Register(c.Context(), application.RegisterDTO{
		Email: body.Email,
		Name:  body.Name,
	})
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     account.ID,
		"email":  account.Email,
		"name":   account.Name,
		"points": account.Points,
	})
}

func (h *AccountHandler) getAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}

	account, err := h.service.GetAccount(c.Context(), id)
	if err != nil {
		return mapAccountError(err)
	}
	return c.JSON(account)
}

func (h *AccountHandler) chargePoints(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.ChargePoints(c.Context(), application.ChargePointsDTO{
		AccountID: id,
		Amount:    body.Amount,
	})
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         record.ID,
		"account_id": record.AccountID,
		"amount":     record.Amount,
		"charged_at": record.ChargedAt,
	})
}

func (h *AccountHandler) chargeHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}

	charges, err := h.service.ChargeHistory(c.Context(), id)
	if err != nil {
		return mapAccountError(err)
	}
	return c.JSON(charges)
}

func (h *AccountHandler) setBan(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}
	var body struct {
		AdminID uuid.UUID `json:"admin_id"`
		Banned  bool      `json:"banned"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.service.SetBan(c.Context(), application.SetBanDTO{
		AdminID:   body.AdminID,
		AccountID: id,
		Banned:    body.Banned,
	})
	if err != nil {
		return mapAccountError(err)
	}
	return c.JSON(fiber.Map{
		"id":        account.ID,
		"is_banned": account.IsBanned,
	})
}

// mapAccountError translates account domain errors into HTTP status codes.
func mapAccountError(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAccountAlreadyExist):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotAdmin):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidAccount):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
