package domain

type RentalStatus string

// Status values match what the web client sends and renders.
const (
	RentalStatusRented            RentalStatus = "Rented"
	RentalStatusPartiallyReturned RentalStatus = "Partially Returned"
	RentalStatusReturned          RentalStatus = "Returned"
	RentalStatusOverdue           RentalStatus = "Overdue"
)

type ReturnStatus string

const (
	ReturnStatusOK      ReturnStatus = "OK"
	ReturnStatusDamaged ReturnStatus = "Damaged"
	ReturnStatusLost    ReturnStatus = "Lost"
)

// Rental is the aggregate root: header fields plus the owned line-item
// and payment collections, always loaded and mutated together.
type Rental struct {
	ID                 string       `json:"id"`
	CustomerID         string       `json:"customerId"`
	CheckoutDate       string       `json:"checkoutDate"`
	ExpectedReturnDate string       `json:"expectedReturnDate"`
	ActualReturnDate   *string      `json:"actualReturnDate,omitempty"`
	TotalAmount        float64      `json:"totalAmount"`
	AdvancePayment     float64      `json:"advancePayment"`
	PaidAmount         float64      `json:"paidAmount"`
	Status             RentalStatus `json:"status"`
	FineAmount         float64      `json:"fineAmount"`
	FineNotes          string       `json:"fineNotes"`
	DiscountAmount     float64      `json:"discountAmount"`
	Remarks            string       `json:"remarks"`
	Items              []RentedItem `json:"items"`
	PaymentHistory     []Payment    `json:"paymentHistory"`
}

// RentedItem is one item-and-quantity line within a rental.
// Quantity - ReturnedQuantity is the line's outstanding reservation
// against Item.Available.
type RentedItem struct {
	ID               string       `json:"-"`
	RentalID         string       `json:"-"`
	ItemID           string       `json:"itemId"`
	Quantity         int32        `json:"quantity"`
	ReturnedQuantity int32        `json:"returnedQuantity"`
	PricePerDay      float64      `json:"pricePerDay"`
	ReturnStatus     ReturnStatus `json:"returnStatus,omitempty"`
}

// Outstanding is the number of units still out with the customer.
func (ri RentedItem) Outstanding() int32 {
	return ri.Quantity - ri.ReturnedQuantity
}

type Payment struct {
	ID       string  `json:"-"`
	RentalID string  `json:"-"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
}

// Balance is the amount the customer still owes on this rental.
func (r *Rental) Balance() float64 {
	return r.TotalAmount + r.FineAmount - r.DiscountAmount - r.AdvancePayment - r.PaidAmount
}

// DeriveStatus computes the rental status implied by the line-item
// return counts. It never yields Overdue; overdue marking is driven by
// the calendar, not by the line items.
func DeriveStatus(items []RentedItem) RentalStatus {
	if len(items) == 0 {
		return RentalStatusRented
	}
	fully := true
	any := false
	for _, ri := range items {
		if ri.ReturnedQuantity > 0 {
			any = true
		}
		if ri.ReturnedQuantity < ri.Quantity {
			fully = false
		}
	}
	switch {
	case fully:
		return RentalStatusReturned
	case any:
		return RentalStatusPartiallyReturned
	default:
		return RentalStatusRented
	}
}

var rentalTransitions = map[RentalStatus]map[RentalStatus]bool{
	RentalStatusRented: {
		RentalStatusRented:            true,
		RentalStatusPartiallyReturned: true,
		RentalStatusReturned:          true,
		RentalStatusOverdue:           true,
	},
	RentalStatusPartiallyReturned: {
		RentalStatusPartiallyReturned: true,
		RentalStatusReturned:          true,
		RentalStatusOverdue:           true,
	},
	RentalStatusOverdue: {
		RentalStatusOverdue:           true,
		RentalStatusPartiallyReturned: true,
		RentalStatusReturned:          true,
	},
	// Returned is terminal.
	RentalStatusReturned: {
		RentalStatusReturned: true,
	},
}

// CanTransition reports whether a rental may move from one status to
// another. Self-transitions are allowed so that a header-only update
// does not trip the check.
func (s RentalStatus) CanTransition(to RentalStatus) bool {
	allowed, ok := rentalTransitions[s]
	if !ok {
		return false
	}
	return allowed[to]
}

// Valid reports whether s is one of the known status values.
func (s RentalStatus) Valid() bool {
	_, ok := rentalTransitions[s]
	return ok
}
