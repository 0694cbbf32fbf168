package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Quotes() QuoteRepository
	Orders() OrderRepository
	Documents() DocumentRepository
	Payments() PaymentRepository
}
