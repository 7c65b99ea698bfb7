package http

import (
	"errors"
	"time"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/application"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuctionHandler exposes the auction module over HTTP.
type AuctionHandler struct {
	service application.AuctionService
}

func NewAuctionHandler(service application.AuctionService) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// RegisterRoutes mounts the auction routes on the fiber app.
func (h *AuctionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/items", h.listItem)
	app.Get("/items", h.listItems)
	app.Get("/items/:id", h.getItemState)
	app.Post("/items/:id/bids", h.placeBid)
	app.Post("/items/:id/purchase", h.confirmPurchase)
	app.Delete("/admin/items/:id", h.deleteItem)
	app.Get("/accounts/:id/items", h.itemsBySeller)
	app.Get("/accounts/:id/won", h.itemsByWinner)
}

func (h *AuctionHandler) listItem(c *fiber.Ctx) error {
	var body struct {
		SellerID    uuid.UUID `json:"seller_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		FloorPrice  int64     `json:"floor_price"`
		Deadline    time.Time `json:"deadline"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.ListItem(c.Context(), application.ListItemDTO{
		SellerID:    body.SellerID,
		Name:        body.Name,
		Description: body.Description,
		FloorPrice:  body.FloorPrice,
		Deadline:    body.Deadline,
	})
	if err != nil {
		return mapAuctionError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          item.ID,
		"name":        item.Name,
		"floor_price": item.FloorPrice,
		"deadline":    item.Deadline,
		"state":       item.State,
	})
}

func (h *AuctionHandler) listItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Context())
	if err != nil {
		return mapAuctionError(err)
	}
	return c.JSON(items)
}

func (h *AuctionHandler) getItemState(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item ID")
	}

	state, err := h.service.GetItemState(c.Context(), id)
	if err != nil {
		return mapAuctionError(err)
	}
	return c.JSON(state)
}

func (h *AuctionHandler) placeBid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item ID")
	}
	var body struct {
		BidderID uuid.UUID `json:"bidder_id"`
		Amount   int64     `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidDTO{
		ItemID:   id,
		BidderID: body.BidderID,
		Amount:   body.Amount,
	})
	if err != nil {
		return mapAuctionError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        bid.ID,
		"item_id":   bid.ItemID,
		"bidder_id": bid.BidderID,
		"amount":    bid.Amount,
		"placed_at": bid.PlacedAt,
	})
}

func (h *AuctionHandler) confirmPurchase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item ID")
	}
	var body struct {
		CallerID uuid.UUID `json:"caller_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.ConfirmPurchase(c.Context(), application.ConfirmPurchaseDTO{
		ItemID:   id,
		CallerID: body.CallerID,
	})
	if err != nil {
		return mapAuctionError(err)
	}
	return c.JSON(fiber.Map{
		"id":        item.ID,
		"state":     item.State,
		"winner_id": item.WinnerID,
		"purchased": item.Purchased,
	})
}

func (h *AuctionHandler) deleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item ID")
	}
	var body struct {
		AdminID uuid.UUID `json:"admin_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err = h.service.DeleteItem(c.Context(), application.DeleteItemDTO{
		AdminID: body.AdminID,
		ItemID:  id,
	})
	if err != nil {
		return mapAuctionError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) itemsBySeller(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}

	items, err := h.service.ItemsBySeller(c.Context(), id)
	if err != nil {
		return mapAuctionError(err)
	}
	return c.JSON(items)
}

func (h *AuctionHandler) itemsByWinner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account ID")
	}

	items, err := h.service.ItemsByWinner(c.Context(), id)
	if err != nil {
		return mapAuctionError(err)
	}
	return c.JSON(items)
}

// mapAuctionError translates domain errors into HTTP status codes.
func mapAuctionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, accdomain.ErrAccountNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAuctionClosed),
		errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrSelfBid),
		errors.Is(err, domain.ErrNoWinner),
		errors.Is(err, domain.ErrAlreadyPurchased):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, accdomain.ErrInsufficientFunds):
		return fiber.NewError(fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrNotWinner), errors.Is(err, accdomain.ErrAccountBanned), errors.Is(err, accdomain.ErrNotAdmin):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, accdomain.ErrInvalidAmount):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
