package booking

import "spacebook/models"

func isVendorOfRecord(caller models.Caller, b *models.Booking) bool {
	return caller.IsVendor() && b.VendorID == caller.UID
}

func canView(caller models.Caller, b *models.Booking) bool {
	switch {
	case caller.IsAdmin():
		return true
	case caller.IsCustomer():
		return b.UID == caller.UID
	case caller.IsVendor():
		return b.VendorID == caller.UID
	}
	return false
}

// canSetStatus decides who may move a booking to target. Confirming, declining
// and completing belong to the vendor; either party may cancel.
func canSetStatus(caller models.Caller, b *models.Booking, target models.BookingStatus) bool {
	if target == models.StatusCancelled {
		return canView(caller, b)
	}
	return caller.IsAdmin() || isVendorOfRecord(caller, b)
}

func canRecordPayment(caller models.Caller, b *models.Booking) bool {
	return caller.IsAdmin() || isVendorOfRecord(caller, b)
}
