package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
)

func reviewableOrder(id, token string) *model.Order {
	return &model.Order{
		ID:            id,
		OrderNumber:   "TDX-1001",
		Status:        model.StatusClientReview,
		ProofreadText: "final text",
		ReviewToken:   token,
	}
}

func newReviewUseCase(orders *fakeOrders) (*ReviewUseCase, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewReviewUseCase(orders, notifier, testLogger()), notifier
}

func TestReviewGetRequiresMatchingToken(t *testing.T) {
	orders := newFakeOrders()
	orders.put(reviewableOrder("ord_1", "secret-token"))
	uc, _ := newReviewUseCase(orders)

	if _, err := uc.Get(context.Background(), "ord_1", "secret-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := uc.Get(context.Background(), "ord_1", "wrong")
	if !errors.Is(err, domainErrors.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestReviewGetHidesMissingOrders(t *testing.T) {
	uc, _ := newReviewUseCase(newFakeOrders())

	_, err := uc.Get(context.Background(), "missing", "any")
	if !errors.Is(err, domainErrors.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestReviewGetRejectsEmptyToken(t *testing.T) {
	orders := newFakeOrders()
	o := reviewableOrder("ord_1", "")
	orders.put(o)
	uc, _ := newReviewUseCase(orders)

	// An order without an issued token must not be reachable even with an
	// empty presented token.
	_, err := uc.Get(context.Background(), "ord_1", "")
	if !errors.Is(err, domainErrors.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestReviewApprove(t *testing.T) {
	orders := newFakeOrders()
	orders.put(reviewableOrder("ord_1", "secret-token"))
	uc, notifier := newReviewUseCase(orders)

	if err := uc.Approve(context.Background(), "ord_1", "secret-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := orders.get("ord_1")
	if got.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}
	if !got.ClientApproved {
		t.Error("expected client_approved flag")
	}
	if !notifier.has("client_approved") {
		t.Error("expected client_approved notification")
	}
}

func TestReviewApproveIsIdempotent(t *testing.T) {
	orders := newFakeOrders()
	orders.put(reviewableOrder("ord_1", "secret-token"))
	uc, _ := newReviewUseCase(orders)

	if err := uc.Approve(context.Background(), "ord_1", "secret-token"); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if err := uc.Approve(context.Background(), "ord_1", "secret-token"); err != nil {
		t.Fatalf("second approve should be a no-op, got %v", err)
	}
	if got := orders.get("ord_1"); got.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}
}

func TestReviewApproveWrongStatus(t *testing.T) {
	orders := newFakeOrders()
	o := reviewableOrder("ord_1", "secret-token")
	o.Status = model.StatusPMReview
	orders.put(o)
	uc, _ := newReviewUseCase(orders)

	err := uc.Approve(context.Background(), "ord_1", "secret-token")
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReviewRequestCorrections(t *testing.T) {
	orders := newFakeOrders()
	orders.put(reviewableOrder("ord_1", "secret-token"))
	uc, notifier := newReviewUseCase(orders)

	err := uc.RequestCorrections(context.Background(), "ord_1", "secret-token", "fix the date format")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := orders.get("ord_1")
	if got.Status != model.StatusCorrections {
		t.Fatalf("status = %q, want corrections", got.Status)
	}
	if got.CorrectionNotes != "fix the date format" {
		t.Errorf("notes = %q", got.CorrectionNotes)
	}
	if !notifier.has("corrections_requested") {
		t.Error("expected corrections_requested notification")
	}
}

func TestReviewRequestCorrectionsDefaultsNotes(t *testing.T) {
	orders := newFakeOrders()
	orders.put(reviewableOrder("ord_1", "secret-token"))
	uc, _ := newReviewUseCase(orders)

	if err := uc.RequestCorrections(context.Background(), "ord_1", "secret-token", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := orders.get("ord_1"); got.CorrectionNotes != defaultCorrectionNotes {
		t.Errorf("notes = %q, want default placeholder", got.CorrectionNotes)
	}
}
