package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Alp4ka/bountypager"
)

// BountyResponse is a feed item as served to clients.
type BountyResponse struct {
	bountypager.Bounty
	ShortDescription string `json:"shortDescription"`
}

// FeedResponse is one page of the feed.
type FeedResponse struct {
	Items         []BountyResponse `json:"items"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
	HasMore       bool             `json:"hasMore"`
	LastIndex     int              `json:"lastIndex"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	engine   *bountypager.Engine
	pageSize int
	logger   zerolog.Logger
}

func NewHandler(engine *bountypager.Engine, pageSize int, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		pageSize: bountypager.NormalizeLimit(pageSize),
		logger:   logger,
	}
}

// NewApp returns a fiber app with the feed routes and request logging.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(requestLogger(h.logger))
	SetupRoutes(app, h)

	return app
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/healthz", h.Health)
	app.Get("/bounties", h.ListBounties)
	app.Get("/bounties/length", h.Length)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListBounties serves GET /bounties?limit=&startToken=.
func (h *Handler) ListBounties(c *fiber.Ctx) error {
	var req bountypager.RawCursorPager
	if err := c.QueryParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid query", err)
	}
	if req.Limit <= 0 {
		req.Limit = h.pageSize
	}

	pager, err := req.Decode()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid startToken", err)
	}

	res, err := h.engine.Paginate(c.UserContext(), pager)
	if err != nil {
		h.logger.Error().Err(err).Str("startToken", req.StartToken).Msg("list bounties failed")
		return sendError(c, statusFor(err), "cannot list bounties", err)
	}

	resp := FeedResponse{
		Items:         make([]BountyResponse, 0, len(res.Items)),
		NextPageToken: res.NextPageToken.String(),
		HasMore:       res.HasMore,
		LastIndex:     res.LastIndex,
	}
	for _, b := range res.Items {
		resp.Items = append(resp.Items, BountyResponse{Bounty: b, ShortDescription: b.ShortDescription()})
	}

	return c.JSON(resp)
}

// Length serves GET /bounties/length.
func (h *Handler) Length(c *fiber.Ctx) error {
	length, err := h.engine.Length(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("ledger length failed")
		return sendError(c, statusFor(err), "cannot read ledger length", err)
	}

	return c.JSON(fiber.Map{"length": length})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bountypager.ErrInvalidCursor):
		return fiber.StatusBadRequest
	case errors.Is(err, bountypager.ErrRemoteUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(ErrorResponse{Error: message, Message: err.Error()})
}

func requestLogger(l zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		l.Info().Msgf("%s %s %d %s", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
