package booking

import "oneday/models"

var (
	ErrSlotFull        = models.NewConflictError("마감된 일정입니다")
	errUnknownSlot     = models.NewValidationError("slotId", "존재하지 않는 일정입니다")
	errBookingNotFound = models.ErrNotFound
)
