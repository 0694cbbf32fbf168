package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/tradux/backend/internal/adapter/ai"
	"github.com/tradux/backend/internal/adapter/extraction"
	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeOrders is an in-memory OrderRepository with real compare-and-set
// semantics, shared by the pipeline and review tests.
type fakeOrders struct {
	mu     sync.Mutex
	orders map[string]*model.Order

	createFn func(context.Context, repository.OrderCreation) (*model.Order, bool, error)
	uploads  map[string]model.PMUpload
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		orders:  make(map[string]*model.Order),
		uploads: make(map[string]model.PMUpload),
	}
}

func (f *fakeOrders) put(o *model.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *o
	f.orders[o.ID] = &clone
}

func (f *fakeOrders) get(id string) *model.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone
	}
	return nil
}

func (f *fakeOrders) CreateFromPayment(ctx context.Context, c repository.OrderCreation) (*model.Order, bool, error) {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	panic("CreateFromPayment not configured")
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*model.Order, error) {
	if o := f.get(id); o != nil {
		return o, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (f *fakeOrders) List(context.Context, string, int, int) ([]model.Order, int, error) {
	panic("not implemented")
}

func (f *fakeOrders) SelectForTranslation(context.Context, int) ([]model.Order, error) {
	panic("not implemented")
}

func (f *fakeOrders) Stats(context.Context) (*model.Stats, error) {
	panic("not implemented")
}

func (f *fakeOrders) cas(id string, from model.TranslationStatus, mutate func(*model.Order)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if o.Status != from {
		return domainErrors.ErrStatusConflict
	}
	mutate(o)
	return nil
}

func (f *fakeOrders) StartTranslation(_ context.Context, id string, from model.TranslationStatus, text, instructions string) error {
	return f.cas(id, from, func(o *model.Order) {
		o.Status = model.StatusTranslating
		o.OriginalText = text
		o.AIInstructions = instructions
		o.ErrorMessage = ""
	})
}

func (f *fakeOrders) SetTranslated(_ context.Context, id, text string) error {
	return f.cas(id, model.StatusTranslating, func(o *model.Order) {
		o.Status = model.StatusProofreading
		o.TranslatedText = text
	})
}

func (f *fakeOrders) SetProofread(_ context.Context, id, text, corrections string) error {
	return f.cas(id, model.StatusProofreading, func(o *model.Order) {
		o.Status = model.StatusPMReview
		o.ProofreadText = text
		o.AICorrections = corrections
	})
}

func (f *fakeOrders) SetTranslationError(_ context.Context, id string, from model.TranslationStatus, message string) error {
	return f.cas(id, from, func(o *model.Order) {
		o.Status = model.StatusTranslationError
		o.ErrorMessage = message
	})
}

func (f *fakeOrders) ApprovePM(_ context.Context, id, notes, reviewToken string) error {
	return f.cas(id, model.StatusPMReview, func(o *model.Order) {
		o.Status = model.StatusClientReview
		o.PMApproved = true
		o.PMNotes = notes
		o.ReviewToken = reviewToken
	})
}

func (f *fakeOrders) ClientApprove(_ context.Context, id string) error {
	return f.cas(id, model.StatusClientReview, func(o *model.Order) {
		o.Status = model.StatusApproved
		o.ClientApproved = true
	})
}

func (f *fakeOrders) RequestCorrections(_ context.Context, id, notes string) error {
	return f.cas(id, model.StatusClientReview, func(o *model.Order) {
		o.Status = model.StatusCorrections
		o.CorrectionNotes = notes
	})
}

func (f *fakeOrders) MarkCompleted(_ context.Context, id string) error {
	return f.cas(id, model.StatusApproved, func(o *model.Order) {
		o.Status = model.StatusCompleted
	})
}

func (f *fakeOrders) UpdateProofreadText(_ context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.ProofreadText = text
	return nil
}

func (f *fakeOrders) AttachPMUpload(_ context.Context, id string, from model.TranslationStatus, upload model.PMUpload) error {
	err := f.cas(id, from, func(o *model.Order) {
		o.Status = model.StatusPMUploadReady
		o.UploadFilename = upload.Filename
	})
	if err == nil {
		f.mu.Lock()
		f.uploads[id] = upload
		f.mu.Unlock()
	}
	return err
}

func (f *fakeOrders) Finalize(_ context.Context, id string) error {
	return f.cas(id, model.StatusPMUploadReady, func(o *model.Order) {
		o.Status = model.StatusFinal
	})
}

func (f *fakeOrders) GetPMUpload(_ context.Context, id string) (*model.PMUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.uploads[id]; ok {
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (f *fakeOrders) SetReviewToken(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.ReviewToken = token
	return nil
}

type fakeQuotes struct {
	quotes map[string]*model.Quote
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{quotes: make(map[string]*model.Quote)}
}

func (f *fakeQuotes) Create(_ context.Context, quote *model.Quote) error {
	if _, exists := f.quotes[quote.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	clone := *quote
	f.quotes[quote.ID] = &clone
	return nil
}

func (f *fakeQuotes) GetByID(_ context.Context, id string) (*model.Quote, error) {
	if q, ok := f.quotes[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

type fakeDocuments struct {
	docs map[string]*model.Document
	data map[string][]byte
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{docs: make(map[string]*model.Document), data: make(map[string][]byte)}
}

func (f *fakeDocuments) Create(_ context.Context, doc *model.Document, data []byte) error {
	clone := *doc
	f.docs[doc.ID] = &clone
	f.data[doc.ID] = data
	return nil
}

func (f *fakeDocuments) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := f.docs[id]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (f *fakeDocuments) ListByIDs(_ context.Context, ids []string) ([]model.Document, error) {
	var result []model.Document
	for _, id := range ids {
		if d, ok := f.docs[id]; ok {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (f *fakeDocuments) GetData(_ context.Context, id string) ([]byte, error) {
	if data, ok := f.data[id]; ok {
		return data, nil
	}
	return nil, domainErrors.ErrNotFound
}

type fakeSessions struct {
	created []model.CheckoutSession
	paid    []string
}

func (f *fakeSessions) CreateCheckoutSession(_ context.Context, session *model.CheckoutSession) error {
	f.created = append(f.created, *session)
	return nil
}

func (f *fakeSessions) MarkSessionPaid(_ context.Context, sessionID string) error {
	f.paid = append(f.paid, sessionID)
	return nil
}

type fakeAI struct {
	translateFn func(context.Context, ai.TranslateRequest) (string, error)
	proofreadFn func(context.Context, ai.ProofreadRequest) (*ai.ProofreadResult, error)
}

func (f *fakeAI) Translate(ctx context.Context, req ai.TranslateRequest) (string, error) {
	if f.translateFn != nil {
		return f.translateFn(ctx, req)
	}
	return "translated: " + req.Text, nil
}

func (f *fakeAI) Proofread(ctx context.Context, req ai.ProofreadRequest) (*ai.ProofreadResult, error) {
	if f.proofreadFn != nil {
		return f.proofreadFn(ctx, req)
	}
	return &ai.ProofreadResult{Text: req.TranslatedText, Corrections: "No corrections needed."}, nil
}

type fakeExtractor struct {
	result *extraction.Result
	err    error
}

func (f *fakeExtractor) Extract(context.Context, []byte, string, string) (*extraction.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	tokens []string
	notes  []string
}

func (n *recordingNotifier) record(event, detail string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	switch event {
	case "translation_ready":
		n.tokens = append(n.tokens, detail)
	case "client_approved", "corrections_requested", "pipeline_failed":
		n.notes = append(n.notes, detail)
	}
}

func (n *recordingNotifier) OrderCreated(*model.Order)  { n.record("order_created", "") }
func (n *recordingNotifier) PMReviewReady(*model.Order) { n.record("pm_review_ready", "") }
func (n *recordingNotifier) TranslationReady(_ *model.Order, token string) {
	n.record("translation_ready", token)
}
func (n *recordingNotifier) ClientApproved(_ *model.Order, notes string) {
	n.record("client_approved", notes)
}
func (n *recordingNotifier) CorrectionsRequested(_ *model.Order, notes string) {
	n.record("corrections_requested", notes)
}
func (n *recordingNotifier) OrderDelivered(*model.Order, *model.PMUpload) {
	n.record("order_delivered", "")
}
func (n *recordingNotifier) PipelineFailed(_ *model.Order, message string) {
	n.record("pipeline_failed", message)
}

func (n *recordingNotifier) has(event string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}
