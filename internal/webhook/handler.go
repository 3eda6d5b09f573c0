// Package webhook receives chat room messages over HTTP, matches them
// against the bot's command table and dispatches matched commands to the
// registered modules.
package webhook

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leafsw/tipbot-go/internal/bot"
	"github.com/leafsw/tipbot-go/internal/ctxutil"
	domerrors "github.com/leafsw/tipbot-go/internal/errors"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
	"github.com/leafsw/tipbot-go/internal/ratelimit"
	"github.com/leafsw/tipbot-go/internal/sentry"
)

// TokenHeader carries the shared webhook token when one is configured.
const TokenHeader = "X-Tipbot-Token"

const errorReply = "Something went wrong, please try again later."

// Request is the inbound message payload posted by the chat platform
// relay.
type Request struct {
	Message string `json:"message" binding:"required"`
	From    struct {
		Name    string `json:"name" binding:"required"`
		Mention string `json:"mention_name" binding:"required"`
		Email   string `json:"email"`
	} `json:"from" binding:"required"`
	Room string `json:"room" binding:"required"`
}

// Reply is one outbound chat message.
type Reply struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// Response carries the bot's replies, in posting order.
type Response struct {
	Replies []Reply `json:"replies"`
}

// Handler is the Gin handler for the webhook endpoint.
type Handler struct {
	token       string
	registry    *bot.Registry
	userLimiter *ratelimit.PerKeyLimiter
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// HandlerConfig holds configuration for creating a Handler.
type HandlerConfig struct {
	// Token is the shared secret expected in the TokenHeader. Empty
	// disables the check.
	Token       string
	Registry    *bot.Registry
	UserLimiter *ratelimit.PerKeyLimiter
	Logger      *logger.Logger
	Metrics     *metrics.Metrics
}

// NewHandler creates a webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		token:       cfg.Token,
		registry:    cfg.Registry,
		userLimiter: cfg.UserLimiter,
		logger:      cfg.Logger.WithModule("webhook"),
		metrics:     cfg.Metrics,
	}
}

// Handle processes one inbound room message. Non-command messages are
// acknowledged with 204 so the relay can fire-and-forget every room line.
func (h *Handler) Handle(c *gin.Context) {
	if h.token != "" && c.GetHeader(TokenHeader) != h.token {
		h.logger.Warn("webhook token mismatch")
		h.metrics.RecordWebhook("invalid")
		c.Status(http.StatusUnauthorized)
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("malformed webhook payload")
		h.metrics.RecordWebhook("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cmd, ok := bot.Match(req.Message)
	if !ok {
		h.metrics.RecordWebhook("ignored")
		c.Status(http.StatusNoContent)
		return
	}

	if !h.userLimiter.Allow(req.From.Mention) {
		h.logger.WithField("sender", req.From.Mention).
			WithCommand(cmd.Kind.String()).
			Warn("sender rate limited")
		// The limiter's OnDrop callback feeds the rate-limited counter.
		h.metrics.RecordWebhook("rate_limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	requestID := uuid.NewString()
	ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
	ctx = ctxutil.WithSender(ctx, req.From.Mention)
	ctx = ctxutil.WithRoom(ctx, req.Room)

	log := h.logger.WithRequestID(requestID).WithCommand(cmd.Kind.String())
	log.WithField("sender", req.From.Mention).WithField("room", req.Room).Info("dispatching command")

	inv := bot.Invocation{
		Command: cmd,
		Sender: bot.Sender{
			Name:    req.From.Name,
			Mention: req.From.Mention,
			Email:   req.From.Email,
		},
		RoomJID: req.Room,
	}

	start := time.Now()
	replies, err := h.registry.Dispatch(ctx, inv)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = commandStatus(err)
		log.WithError(err).Error("command failed")

		// Tips issued before a mid-fanout failure stay issued, so the
		// replies gathered so far still go out, followed by the error line.
		replies = append(replies, bot.Reply{Text: userFacingMessage(ctx, err)})
	}
	h.metrics.RecordCommand(cmd.Kind.String(), status, duration)
	h.metrics.RecordWebhook("dispatched")

	out := Response{Replies: make([]Reply, 0, len(replies))}
	for _, r := range replies {
		out.Replies = append(out.Replies, Reply{Text: r.Text, ImageURL: r.ImageURL})
	}
	c.JSON(http.StatusOK, out)
}

// commandStatus classifies a dispatch error for the command counter.
func commandStatus(err error) string {
	var verr *domerrors.ValidationError
	if errors.As(err, &verr) || errors.Is(err, domerrors.ErrInvalidInput) {
		return "invalid"
	}
	return "error"
}

// userFacingMessage picks the reply text for a failed command. Errors that
// carry a message written for the chat user are relayed verbatim; anything
// else gets a generic line and goes to Sentry.
func userFacingMessage(ctx context.Context, err error) string {
	var werr *domerrors.WrappedError
	if errors.As(err, &werr) {
		return werr.UserMessage
	}
	var verr *domerrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	sentry.CaptureExceptionWithContext(ctx, err)
	return errorReply
}
