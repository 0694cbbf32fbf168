package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{
		pool:         mock,
		logger:       logger,
		numberPrefix: "TDX",
		numberOffset: 1000,
	}
	return storage, mock
}

func quoteRow(id string, status model.QuoteStatus) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(strings.Split(
		"id reference service_tier cert_type delivery_speed delivery_method "+
			"source_language target_language document_type purpose "+
			"customer_name customer_email customer_phone notes document_ids "+
			"per_page page_count base_price speed_multiplier translation_cost "+
			"cert_fee delivery_fee total_price status order_id order_number created_at", " ")).
		AddRow(
			id, "TDX-20260831-ABC123", "professional", "notarized", "urgent", "email",
			"es", "en", "birth certificate", "immigration",
			"Jane Roe", "jane@example.com", "", "", []string{"doc-1"},
			29.0, 3, 87.0, 1.25, 108.75,
			15.0, 0.0, 123.75, status, "", "", time.Now(),
		)
}

func TestCreateFromPayment_DuplicateSession(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs("cs_1", "q_1").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 0))
	mock.ExpectCommit()

	order, created, err := storage.Orders().CreateFromPayment(context.Background(), repository.OrderCreation{
		OrderID:   "ord_1",
		SessionID: "cs_1",
		QuoteID:   "q_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for duplicate session")
	}
	if order != nil {
		t.Fatal("expected nil order for duplicate session")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromPayment_CreatesOrderAndFlipsQuote(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs("cs_1", "q_1").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id=\\$1 FOR UPDATE").
		WithArgs("q_1").
		WillReturnRows(quoteRow("q_1", model.QuoteStatusPendingPayment))
	mock.ExpectQuery("INSERT INTO counters").
		WillReturnRows(pgxmockv3.NewRows([]string{"value"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs([]string{"doc-1"}).
		WillReturnRows(pgxmockv3.NewRows([]string{"text"}).AddRow("ACTA DE NACIMIENTO"))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(
			"ord_1", "TDX-1001", "q_1", "cs_1",
			"Jane Roe", "jane@example.com", "",
			"professional", "notarized", "urgent", "email",
			"es", "en", "birth certificate", "immigration",
			3, "", []string{"doc-1"}, 87.0, 123.75, model.StatusReceived,
			"ACTA DE NACIMIENTO", "tok",
		).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("UPDATE quotes SET status").
		WithArgs(model.QuoteStatusPaid, "ord_1", "TDX-1001", "q_1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	order, created, err := storage.Orders().CreateFromPayment(context.Background(), repository.OrderCreation{
		OrderID:     "ord_1",
		SessionID:   "cs_1",
		QuoteID:     "q_1",
		ReviewToken: "tok",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true")
	}
	if order.OrderNumber != "TDX-1001" {
		t.Errorf("order number = %q, want TDX-1001", order.OrderNumber)
	}
	if order.Status != model.StatusReceived {
		t.Errorf("status = %q, want received", order.Status)
	}
	if order.OriginalText != "ACTA DE NACIMIENTO" {
		t.Errorf("original text = %q", order.OriginalText)
	}
	if order.TotalPrice != 123.75 {
		t.Errorf("total price = %v, want 123.75", order.TotalPrice)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromPayment_QuoteAlreadyPaid(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs("cs_2", "q_1").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id=\\$1 FOR UPDATE").
		WithArgs("q_1").
		WillReturnRows(quoteRow("q_1", model.QuoteStatusPaid))
	mock.ExpectCommit()

	order, created, err := storage.Orders().CreateFromPayment(context.Background(), repository.OrderCreation{
		OrderID:   "ord_2",
		SessionID: "cs_2",
		QuoteID:   "q_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || order != nil {
		t.Fatal("expected no order for already-paid quote")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromPayment_OCRPendingWithoutText(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs("cs_3", "q_1").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id=\\$1 FOR UPDATE").
		WithArgs("q_1").
		WillReturnRows(quoteRow("q_1", model.QuoteStatusPendingPayment))
	mock.ExpectQuery("INSERT INTO counters").
		WillReturnRows(pgxmockv3.NewRows([]string{"value"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs([]string{"doc-1"}).
		WillReturnRows(pgxmockv3.NewRows([]string{"text"}).AddRow(""))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(
			"ord_3", "TDX-1007", "q_1", "cs_3",
			"Jane Roe", "jane@example.com", "",
			"professional", "notarized", "urgent", "email",
			"es", "en", "birth certificate", "immigration",
			3, "", []string{"doc-1"}, 87.0, 123.75, model.StatusOCRPending,
			"", "",
		).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("UPDATE quotes SET status").
		WithArgs(model.QuoteStatusPaid, "ord_3", "TDX-1007", "q_1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	order, created, err := storage.Orders().CreateFromPayment(context.Background(), repository.OrderCreation{
		OrderID:   "ord_3",
		SessionID: "cs_3",
		QuoteID:   "q_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true")
	}
	if order.Status != model.StatusOCRPending {
		t.Errorf("status = %q, want ocr_pending", order.Status)
	}
	if order.OrderNumber != "TDX-1007" {
		t.Errorf("order number = %q, want TDX-1007", order.OrderNumber)
	}
}

func TestCreateFromPayment_RollsBackOnError(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs("cs_4", "q_1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := storage.Orders().CreateFromPayment(context.Background(), repository.OrderCreation{
		OrderID:   "ord_4",
		SessionID: "cs_4",
		QuoteID:   "q_1",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStartTranslation_StatusConflict(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders").
		WithArgs(model.StatusTranslating, "text", "", "ord_1", model.StatusReceived).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT 1 FROM orders").
		WithArgs("ord_1").
		WillReturnRows(pgxmockv3.NewRows([]string{"one"}).AddRow(1))

	err := storage.Orders().StartTranslation(context.Background(), "ord_1", model.StatusReceived, "text", "")
	if !errors.Is(err, domainErrors.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
}

func TestStartTranslation_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders").
		WithArgs(model.StatusTranslating, "text", "", "missing", model.StatusReceived).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT 1 FROM orders").
		WithArgs("missing").
		WillReturnRows(pgxmockv3.NewRows([]string{"one"}))

	err := storage.Orders().StartTranslation(context.Background(), "missing", model.StatusReceived, "text", "")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientApprove_Success(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders").
		WithArgs(model.StatusApproved, "ord_1", model.StatusClientReview).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := storage.Orders().ClientApprove(context.Background(), "ord_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRequestCorrections_ClearsClientApproval(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders\\s+SET status=\\$1, correction_notes=\\$2, client_approved=FALSE").
		WithArgs(model.StatusCorrections, "page 2 name misspelled", "ord_1", model.StatusClientReview).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	err := storage.Orders().RequestCorrections(context.Background(), "ord_1", "page 2 name misspelled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id=\\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Orders().GetByID(context.Background(), "missing")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuoteGetByID_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id=\\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Quotes().GetByID(context.Background(), "missing")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetReviewToken_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders SET review_token").
		WithArgs("tok", "missing").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	err := storage.Orders().SetReviewToken(context.Background(), "missing", "tok")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkSessionPaid(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE checkout_sessions SET status").
		WithArgs("cs_1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := storage.Payments().MarkSessionPaid(context.Background(), "cs_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDocumentsListByIDs_Empty(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	docs, err := storage.Documents().ListByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Fatal("expected nil result for empty id list")
	}
}

func TestStats(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(pgxmockv3.NewRows([]string{"a", "b", "c", "d", "e", "f"}).
			AddRow(10, 4, 6, 2, 1, 1234.50))

	stats, err := storage.Orders().Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalOrders != 10 || stats.Completed != 4 || stats.PendingPMReview != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.TotalRevenue != 1234.50 {
		t.Errorf("revenue = %v, want 1234.50", stats.TotalRevenue)
	}
}
