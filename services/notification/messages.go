package notification

import (
	"fmt"

	"spacebook/models"
)

type outbound struct {
	recipient string
	kind      models.NotificationType
	title     string
	body      string
	data      map[string]string
}

// compose picks the recipient and wording for a lifecycle event.
// ok is false when the event needs no notification.
func compose(ev models.BookingEvent) (out outbound, ok bool) {
	data := map[string]string{
		"bookingId":  ev.BookingID,
		"propertyId": ev.PropertyID,
		"screen":     "BookingDetail",
		"id":         ev.BookingID,
	}

	switch ev.Type {
	case models.EventBookingRequested:
		data["type"] = "NEW_BOOKING"
		data["customerName"] = ev.CustomerName
		data["propertyName"] = ev.PropertyName
		return outbound{
			recipient: ev.VendorID,
			kind:      models.NotificationBookingRequest,
			title:     "New Booking Request!",
			body:      fmt.Sprintf("%s wants to book %q", ev.CustomerName, ev.PropertyName),
			data:      data,
		}, true

	case models.EventBookingStatusChanged:
		data["type"] = string(models.NotificationBookingStatusUpdate)
		data["status"] = string(ev.Status)
		out := outbound{
			recipient: ev.CustomerUID,
			kind:      models.NotificationBookingStatusUpdate,
			data:      data,
		}
		switch ev.Status {
		case models.StatusBooked:
			out.title = "Booking Confirmed!"
			out.body = fmt.Sprintf("Your booking for %q has been confirmed", ev.PropertyName)
		case models.StatusNotBooked:
			out.title = "Booking Declined"
			out.body = fmt.Sprintf("Your booking for %q was declined", ev.PropertyName)
		case models.StatusCompleted:
			out.title = "Booking Completed"
			out.body = fmt.Sprintf("Your booking for %q has been completed", ev.PropertyName)
		case models.StatusCancelled:
			out.title = "Booking Cancelled"
			if ev.ActorUID == ev.CustomerUID {
				out.recipient = ev.VendorID
				out.body = fmt.Sprintf("%s cancelled their booking for %q", ev.CustomerName, ev.PropertyName)
			} else {
				out.body = fmt.Sprintf("Your booking for %q has been cancelled", ev.PropertyName)
			}
		default:
			return outbound{}, false
		}
		return out, true

	case models.EventBookingPaymentUpdated:
		data["type"] = string(models.NotificationBookingPaymentUpdate)
		data["paymentStatus"] = string(ev.PaymentStatus)
		out := outbound{
			recipient: ev.CustomerUID,
			kind:      models.NotificationBookingPaymentUpdate,
			data:      data,
		}
		switch ev.PaymentStatus {
		case models.PaymentAdvancePaid:
			out.title = "Advance Payment Received"
			out.body = fmt.Sprintf("Advance payment of %.2f for %q has been received", ev.Amount, ev.PropertyName)
		case models.PaymentPaid:
			out.title = "Payment Completed"
			out.body = fmt.Sprintf("Full payment for %q has been received", ev.PropertyName)
		default:
			return outbound{}, false
		}
		return out, true
	}
	return outbound{}, false
}
