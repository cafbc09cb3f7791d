package models

// Purchase records a simulated payment. Purchases are append-only.
type Purchase struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	BookID        string  `json:"book_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	PurchaseDate  string  `json:"purchase_date"`
}

type PurchaseInput struct {
	UserID        string  `json:"user_id" validate:"required"`
	BookID        string  `json:"book_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

func (in PurchaseInput) NewPurchase(id, date string) Purchase {
	return Purchase{
		ID:            id,
		UserID:        in.UserID,
		BookID:        in.BookID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PurchaseDate:  date,
	}
}
