package api

import (
	"context"
	"errors"
	"net/http"

	"rentfleet/internal/domain/payment"
	"rentfleet/internal/domain/user"
	reqdto "rentfleet/internal/handler/dto/request"
	resdto "rentfleet/internal/handler/dto/response"
	"rentfleet/internal/handler/middleware"
	"rentfleet/internal/infra"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	paymentCommands commands.PaymentCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	paymentCommands commands.PaymentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		paymentCommands: paymentCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book one or more instances of a template for a window
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), clientID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Template not found",
			})
		case errors.Is(err, commands.ErrInsufficientAvailability):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Not enough available instances for the requested window",
			})
		case errors.Is(err, commands.ErrInvalidWindow), errors.Is(err, commands.ErrInvalidUnitCount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking window or unit count",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary List bookings
// @Description List the caller's bookings (clients: own, renters: their templates')
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.ListForUser(c.Request.Context(), actorID, actorRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get booking
// @Description Get one booking; participants and admins only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actorID, actorRole, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a participant of this booking",
			})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Transition booking status
// @Description Apply one role-gated booking status change
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionBookingRequest true "Target status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/status [post]
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.bookingCommands.TransitionBooking(c.Request.Context(), actorID, actorRole, bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a participant of this booking",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Status transition not allowed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List booking messages
// @Description Read the booking's message thread; participants only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.MessageResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/messages [get]
func (h *BookingHandler) ListMessages(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	messages, err := h.bookingQueries.ListMessages(c.Request.Context(), actorID, actorRole, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a participant of this booking",
			})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.MessageResponse, len(messages))
	for i, m := range messages {
		response[i] = resdto.FromMessageView(m)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Append booking message
// @Description Append one message to the booking's thread; participants only
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AppendMessageRequest true "Message body"
// @Success 201 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/messages [post]
func (h *BookingHandler) AppendMessage(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	msg, err := h.bookingCommands.AppendMessage(c.Request.Context(), actorID, actorRole, bookingID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a participant of this booking",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Message body must be between 1 and 2000 characters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMessage(msg))
}

// @Summary Complete payment
// @Description Pay for an approved booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/payment/complete [post]
func (h *BookingHandler) CompletePayment(c *gin.Context) {
	h.movePayment(c, h.paymentCommands.CompletePayment)
}

// @Summary Refund payment
// @Description Refund the payment of a canceled booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/payment/refund [post]
func (h *BookingHandler) RefundPayment(c *gin.Context) {
	h.movePayment(c, h.paymentCommands.RefundPayment)
}

func (h *BookingHandler) movePayment(c *gin.Context, move func(ctx context.Context, actorID, bookingID uuid.UUID) (*payment.Payment, error)) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	pay, err := move(c.Request.Context(), actorID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Payment not found",
			})
		case errors.Is(err, commands.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a participant of this booking",
			})
		case errors.Is(err, commands.ErrBookingNotApproved),
			errors.Is(err, commands.ErrBookingNotCanceled),
			errors.Is(err, commands.ErrPaymentStateConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Payment state does not allow this move",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayment(pay))
}

func actorFromContext(c *gin.Context) (uuid.UUID, user.Role, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return actorID, role, true
}
