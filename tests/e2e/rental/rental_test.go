//go:build e2e

package rental

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	reqdto "rentfleet/internal/handler/dto/request"
	resdto "rentfleet/internal/handler/dto/response"
	"rentfleet/tests/common/authtest"
	"rentfleet/tests/common/builder"
	"rentfleet/tests/common/httptest"
	"rentfleet/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type RentalE2ETestSuite struct {
	e2e.SharedSuite
}

func TestRentalE2E(t *testing.T) {
	suite.Run(t, new(RentalE2ETestSuite))
}

// bookingWindow returns a 4-hour window far enough in the future that no
// test run can race past it.
func (s *RentalE2ETestSuite) bookingWindow() (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).Add(72 * time.Hour)
	return start, start.Add(4 * time.Hour)
}

func (s *RentalE2ETestSuite) createTemplate(token string, b *builder.TemplateBuilder) resdto.TemplateResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/templates",
		b.BuildCreateRequestDTO(), token)

	var created resdto.TemplateResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)
	s.Require().Len(created.Instances, b.TotalCount)
	return created
}

func (s *RentalE2ETestSuite) createBooking(token string, templateID uuid.UUID, start, end time.Time, count int) (resdto.CreateBookingResponse, int) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings",
		reqdto.CreateBookingRequest{
			TemplateID: templateID,
			StartTime:  start,
			EndTime:    end,
			Count:      count,
		}, token)

	var created resdto.CreateBookingResponse
	if w.Code == http.StatusCreated {
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)
	}
	return created, w.Code
}

func (s *RentalE2ETestSuite) transition(token string, bookingID uuid.UUID, status string) int {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("/api/bookings/%s/status", bookingID),
		reqdto.TransitionBookingRequest{Status: status}, token)
	return w.Code
}

func (s *RentalE2ETestSuite) TestFullRentalFlow() {
	s.Run("success: book, approve, pay, cancel, refund", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()

		// Dry-run first: all three units are free and priced per ceil-hour.
		availURL := fmt.Sprintf("/api/templates/%s/availability?start=%s&end=%s&count=2",
			tmpl.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, availURL, nil, clientToken)

		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &avail)
		s.Equal(3, avail.AvailableCount)
		s.Equal(int64(30000), avail.UnitPriceCents)
		s.Equal(int64(60000), avail.TotalPriceCents)

		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)
		s.Require().Len(created.BookingIDs, 1)
		s.Equal([]string{"mini-excavator-1"}, created.AssignedCodes)
		s.Equal("pending_renter_approval", created.Status)
		s.Equal(int64(30000), created.TotalPriceCents)

		bookingID := created.BookingIDs[0]

		s.Equal(http.StatusNoContent, s.transition(renterToken, bookingID, "approved_by_renter"))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/complete", bookingID), nil, clientToken)
		var pay resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &pay)
		s.Equal("completed", pay.Status)
		s.Equal(int64(30000), pay.AmountCents)

		// The detail view reflects the approval and carries the payment.
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/bookings/%s", bookingID), nil, clientToken)
		var view resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)

		expected := &resdto.BookingResponse{
			ID:           bookingID,
			TemplateID:   tmpl.ID,
			TemplateName: "Mini Excavator 1.5t",
			InstanceCode: "mini-excavator-1",
			ClientEmail:  "client@example.com",
			StartTime:    start,
			EndTime:      end,
			Status:       "approved_by_renter",
			PriceCents:   30000,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{},
				"InstanceID", "ClientID", "RenterID", "PaymentID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &view, opts...); diff != "" {
			s.T().Errorf("Booking detail mismatch (-want +got):\n%s", diff)
		}
		s.Require().NotNil(view.PaymentID)
		s.Equal(pay.ID, *view.PaymentID)

		s.Equal(http.StatusNoContent, s.transition(clientToken, bookingID, "canceled_by_client"))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/refund", bookingID), nil, renterToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &pay)
		s.Equal("refunded", pay.Status)
	})

	s.Run("success: both parties see the booking in their lists", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		_, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		for _, token := range []string{clientToken, renterToken} {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, token)
			var items []resdto.BookingListResponse
			httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &items)
			s.Require().Len(items, 1)
			s.Equal("Mini Excavator 1.5t", items[0].TemplateName)
		}
	})
}

func (s *RentalE2ETestSuite) TestOverlapConflicts() {
	s.Run("error: a second booking for the last unit is rejected with 409", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		firstClient := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "first@example.com", "client")
		secondClient := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "second@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder().WithTotalCount(1))
		start, end := s.bookingWindow()

		_, code := s.createBooking(firstClient, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		_, code = s.createBooking(secondClient, tmpl.ID, start.Add(time.Hour), end.Add(time.Hour), 1)
		s.Equal(http.StatusConflict, code)
	})

	s.Run("success: back-to-back windows on one unit do not conflict", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder().WithTotalCount(1))
		start, end := s.bookingWindow()

		_, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		_, code = s.createBooking(clientToken, tmpl.ID, end, end.Add(4*time.Hour), 1)
		s.Equal(http.StatusCreated, code)
	})

	s.Run("success: canceling frees the unit for a new booking", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder().WithTotalCount(1))
		start, end := s.bookingWindow()

		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)
		s.Require().Equal(http.StatusNoContent,
			s.transition(clientToken, created.BookingIDs[0], "canceled_by_client"))

		_, code = s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Equal(http.StatusCreated, code)
	})
}

func (s *RentalE2ETestSuite) TestRoleGating() {
	s.Run("error: clients may not create templates", func() {
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/templates",
			builder.NewTemplateBuilder().BuildCreateRequestDTO(), clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("error: renters may not create bookings", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		_, code := s.createBooking(renterToken, tmpl.ID, start, end, 1)
		s.Equal(http.StatusForbidden, code)
	})

	s.Run("error: a client cannot approve their own booking", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		s.Equal(http.StatusConflict, s.transition(clientToken, created.BookingIDs[0], "approved_by_renter"))
	})

	s.Run("error: strangers cannot see or move a foreign booking", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")
		strangerToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "stranger@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)
		bookingID := created.BookingIDs[0]

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/bookings/%s", bookingID), nil, strangerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")

		s.Equal(http.StatusForbidden, s.transition(strangerToken, bookingID, "canceled_by_client"))
	})

	s.Run("success: admins can inspect any booking", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")
		adminToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/bookings/%s", created.BookingIDs[0]), nil, adminToken)
		var view resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.Equal(created.BookingIDs[0], view.ID)
	})
}

func (s *RentalE2ETestSuite) TestInstanceMaintenance() {
	s.Run("success: a unit in maintenance stops being bookable", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder().WithTotalCount(1))
		instanceID := tmpl.Instances[0].ID

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			fmt.Sprintf("/api/instances/%s/status", instanceID),
			reqdto.UpdateInstanceStatusRequest{Status: "maintenance"}, renterToken)
		s.Require().Equal(http.StatusNoContent, w.Code)

		start, end := s.bookingWindow()
		availURL := fmt.Sprintf("/api/templates/%s/availability?start=%s&end=%s",
			tmpl.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, availURL, nil, clientToken)

		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &avail)
		s.Equal(0, avail.AvailableCount)

		_, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Equal(http.StatusConflict, code)
	})

	s.Run("error: only the owning renter may change instance status", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		otherRenter := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "other-renter@example.com", "renter")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			fmt.Sprintf("/api/instances/%s/status", tmpl.Instances[0].ID),
			reqdto.UpdateInstanceStatusRequest{Status: "retired"}, otherRenter)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})
}

func (s *RentalE2ETestSuite) TestMessages() {
	s.Run("success: participants exchange messages on the booking thread", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)
		bookingID := created.BookingIDs[0]

		messagesURL := fmt.Sprintf("/api/bookings/%s/messages", bookingID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, messagesURL,
			reqdto.AppendMessageRequest{Body: "Is delivery included?"}, clientToken)
		var posted resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &posted)
		s.Equal("Is delivery included?", posted.Body)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, messagesURL,
			reqdto.AppendMessageRequest{Body: "Yes, within 20km."}, renterToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &posted)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, messagesURL, nil, clientToken)
		var thread []resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &thread)
		s.Require().Len(thread, 2)
		s.Equal("Is delivery included?", thread[0].Body)
		s.Equal("Yes, within 20km.", thread[1].Body)
	})

	s.Run("error: outsiders cannot read or post", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")
		strangerToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "stranger@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		messagesURL := fmt.Sprintf("/api/bookings/%s/messages", created.BookingIDs[0])

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, messagesURL, nil, strangerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, messagesURL,
			reqdto.AppendMessageRequest{Body: "hello"}, strangerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})
}

func (s *RentalE2ETestSuite) TestPaymentGuards() {
	s.Run("error: payment cannot complete before approval", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/complete", created.BookingIDs[0]), nil, clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("error: refund requires a canceled booking and a completed payment", func() {
		renterToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")
		clientToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		tmpl := s.createTemplate(renterToken, builder.NewTemplateBuilder())
		start, end := s.bookingWindow()
		created, code := s.createBooking(clientToken, tmpl.ID, start, end, 1)
		s.Require().Equal(http.StatusCreated, code)
		bookingID := created.BookingIDs[0]

		// Still pending: nothing to refund.
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/refund", bookingID), nil, renterToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")

		// Canceled without payment: the pending payment cannot move to refunded.
		s.Require().Equal(http.StatusNoContent, s.transition(clientToken, bookingID, "canceled_by_client"))
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/payment/refund", bookingID), nil, renterToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})
}
