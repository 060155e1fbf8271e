package domain

// Item is a rentable stock entry. Quantity is total owned stock;
// Available is the portion not reserved by any open rental line.
// 0 <= Available <= Quantity holds at all times.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	Quantity    int32   `json:"quantity"`
	Available   int32   `json:"available"`
	RentalPrice float64 `json:"rentalPrice"`
	Remarks     string  `json:"remarks"`
	AddedAt     string  `json:"addedAt"`
}
