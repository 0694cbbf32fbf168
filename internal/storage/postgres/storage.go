package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses. Tests substitute a
// pgxmock pool through the same interface.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool         pgxPool
	logger       *slog.Logger
	numberPrefix string
	numberOffset int64
}

type quoteRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type documentRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn, numberPrefix string, numberOffset int64, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{
		pool:         pool,
		logger:       logger,
		numberPrefix: numberPrefix,
		numberOffset: numberOffset,
	}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Quotes() repository.QuoteRepository {
	return &quoteRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Documents() repository.DocumentRepository {
	return &documentRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
            id TEXT PRIMARY KEY,
            filename TEXT NOT NULL,
            content_type TEXT NOT NULL DEFAULT '',
            file_size BIGINT NOT NULL DEFAULT 0,
            word_count INTEGER NOT NULL DEFAULT 0,
            page_count INTEGER NOT NULL DEFAULT 1,
            extraction_method TEXT NOT NULL DEFAULT '',
            extracted_text TEXT NOT NULL DEFAULT '',
            data BYTEA,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS quotes (
            id TEXT PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            service_tier TEXT NOT NULL,
            cert_type TEXT NOT NULL,
            delivery_speed TEXT NOT NULL,
            delivery_method TEXT NOT NULL,
            source_language TEXT NOT NULL DEFAULT '',
            target_language TEXT NOT NULL DEFAULT '',
            document_type TEXT NOT NULL DEFAULT '',
            purpose TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            customer_email TEXT NOT NULL DEFAULT '',
            customer_phone TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            document_ids TEXT[] NOT NULL DEFAULT '{}',
            per_page DOUBLE PRECISION NOT NULL,
            page_count INTEGER NOT NULL,
            base_price DOUBLE PRECISION NOT NULL,
            speed_multiplier DOUBLE PRECISION NOT NULL,
            translation_cost DOUBLE PRECISION NOT NULL,
            cert_fee DOUBLE PRECISION NOT NULL,
            delivery_fee DOUBLE PRECISION NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            order_id TEXT NOT NULL DEFAULT '',
            order_number TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            quote_id TEXT NOT NULL REFERENCES quotes(id),
            session_id TEXT NOT NULL,
            customer_name TEXT NOT NULL DEFAULT '',
            customer_email TEXT NOT NULL DEFAULT '',
            customer_phone TEXT NOT NULL DEFAULT '',
            service_tier TEXT NOT NULL,
            cert_type TEXT NOT NULL,
            delivery_speed TEXT NOT NULL,
            delivery_method TEXT NOT NULL,
            source_language TEXT NOT NULL DEFAULT '',
            target_language TEXT NOT NULL DEFAULT '',
            document_type TEXT NOT NULL DEFAULT '',
            purpose TEXT NOT NULL DEFAULT '',
            page_count INTEGER NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            document_ids TEXT[] NOT NULL DEFAULT '{}',
            base_price DOUBLE PRECISION NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            original_text TEXT NOT NULL DEFAULT '',
            translated_text TEXT NOT NULL DEFAULT '',
            proofread_text TEXT NOT NULL DEFAULT '',
            ai_corrections TEXT NOT NULL DEFAULT '',
            ai_instructions TEXT NOT NULL DEFAULT '',
            error_message TEXT NOT NULL DEFAULT '',
            pm_approved BOOLEAN NOT NULL DEFAULT FALSE,
            pm_notes TEXT NOT NULL DEFAULT '',
            client_approved BOOLEAN NOT NULL DEFAULT FALSE,
            correction_notes TEXT NOT NULL DEFAULT '',
            review_token TEXT NOT NULL DEFAULT '',
            upload_filename TEXT NOT NULL DEFAULT '',
            upload_content_type TEXT NOT NULL DEFAULT '',
            upload_size BIGINT NOT NULL DEFAULT 0,
            upload_data BYTEA,
            uploaded_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            approved_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS payment_events (
            session_id TEXT PRIMARY KEY,
            quote_id TEXT NOT NULL,
            event_type TEXT NOT NULL DEFAULT '',
            brand TEXT NOT NULL DEFAULT '',
            processed BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS checkout_sessions (
            session_id TEXT PRIMARY KEY,
            quote_id TEXT NOT NULL,
            checkout_url TEXT NOT NULL DEFAULT '',
            amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            currency TEXT NOT NULL DEFAULT 'usd',
            status TEXT NOT NULL DEFAULT 'open',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS counters (
            name TEXT PRIMARY KEY,
            value BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- QuoteRepository implementation ---

func (r *quoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	const query = `INSERT INTO quotes (
            id, reference, service_tier, cert_type, delivery_speed, delivery_method,
            source_language, target_language, document_type, purpose,
            customer_name, customer_email, customer_phone, notes, document_ids,
            per_page, page_count, base_price, speed_multiplier, translation_cost,
            cert_fee, delivery_fee, total_price, status
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
        RETURNING created_at`
	b := quote.Breakdown
	err := r.storage.pool.QueryRow(ctx, query,
		quote.ID, quote.Reference, quote.ServiceTier, quote.CertType, quote.DeliverySpeed, quote.DeliveryMethod,
		quote.SourceLanguage, quote.TargetLanguage, quote.DocumentType, quote.Purpose,
		quote.CustomerName, quote.CustomerEmail, quote.CustomerPhone, quote.Notes, quote.DocumentIDs,
		b.PerPage, b.PageCount, b.BasePrice, b.SpeedMultiplier, b.TranslationCost,
		b.CertFee, b.DeliveryFee, b.TotalPrice, quote.Status,
	).Scan(&quote.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

const quoteColumns = `id, reference, service_tier, cert_type, delivery_speed, delivery_method,
        source_language, target_language, document_type, purpose,
        customer_name, customer_email, customer_phone, notes, document_ids,
        per_page, page_count, base_price, speed_multiplier, translation_cost,
        cert_fee, delivery_fee, total_price, status, order_id, order_number, created_at`

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var q model.Quote
	err := row.Scan(
		&q.ID, &q.Reference, &q.ServiceTier, &q.CertType, &q.DeliverySpeed, &q.DeliveryMethod,
		&q.SourceLanguage, &q.TargetLanguage, &q.DocumentType, &q.Purpose,
		&q.CustomerName, &q.CustomerEmail, &q.CustomerPhone, &q.Notes, &q.DocumentIDs,
		&q.Breakdown.PerPage, &q.Breakdown.PageCount, &q.Breakdown.BasePrice, &q.Breakdown.SpeedMultiplier,
		&q.Breakdown.TranslationCost, &q.Breakdown.CertFee, &q.Breakdown.DeliveryFee, &q.Breakdown.TotalPrice,
		&q.Status, &q.OrderID, &q.OrderNumber, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id=$1`
	return scanQuote(r.storage.pool.QueryRow(ctx, query, id))
}

// --- DocumentRepository implementation ---

func (r *documentRepository) Create(ctx context.Context, doc *model.Document, data []byte) error {
	const query = `INSERT INTO documents (
            id, filename, content_type, file_size, word_count, page_count,
            extraction_method, extracted_text, data
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING uploaded_at`
	err := r.storage.pool.QueryRow(ctx, query,
		doc.ID, doc.Filename, doc.ContentType, doc.FileSize, doc.WordCount, doc.PageCount,
		doc.ExtractionMethod, doc.ExtractedText, data,
	).Scan(&doc.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

const documentColumns = `id, filename, content_type, file_size, word_count, page_count,
        extraction_method, extracted_text, uploaded_at`

func (r *documentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id=$1`
	var d model.Document
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Filename, &d.ContentType, &d.FileSize, &d.WordCount, &d.PageCount,
		&d.ExtractionMethod, &d.ExtractedText, &d.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ANY($1) ORDER BY uploaded_at`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID, &d.Filename, &d.ContentType, &d.FileSize, &d.WordCount, &d.PageCount,
			&d.ExtractionMethod, &d.ExtractedText, &d.UploadedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *documentRepository) GetData(ctx context.Context, id string) ([]byte, error) {
	const query = `SELECT data FROM documents WHERE id=$1`
	var data []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) CreateCheckoutSession(ctx context.Context, session *model.CheckoutSession) error {
	const query = `INSERT INTO checkout_sessions (session_id, quote_id, checkout_url, amount, currency, status)
                   VALUES ($1,$2,$3,$4,$5,'open')
                   ON CONFLICT (session_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query,
		session.SessionID, session.QuoteID, session.CheckoutURL, session.Amount, session.Currency)
	return err
}

func (r *paymentRepository) MarkSessionPaid(ctx context.Context, sessionID string) error {
	const query = `UPDATE checkout_sessions SET status='paid' WHERE session_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, sessionID)
	return err
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_number, quote_id, session_id,
        customer_name, customer_email, customer_phone,
        service_tier, cert_type, delivery_speed, delivery_method,
        source_language, target_language, document_type, purpose,
        page_count, notes, document_ids, base_price, total_price, status,
        original_text, translated_text, proofread_text, ai_corrections, ai_instructions,
        error_message, pm_approved, pm_notes, client_approved, correction_notes, review_token,
        upload_filename, upload_content_type, upload_size, uploaded_at,
        created_at, updated_at, approved_at, completed_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.QuoteID, &o.SessionID,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ServiceTier, &o.CertType, &o.DeliverySpeed, &o.DeliveryMethod,
		&o.SourceLanguage, &o.TargetLanguage, &o.DocumentType, &o.Purpose,
		&o.PageCount, &o.Notes, &o.DocumentIDs, &o.BasePrice, &o.TotalPrice, &o.Status,
		&o.OriginalText, &o.TranslatedText, &o.ProofreadText, &o.AICorrections, &o.AIInstructions,
		&o.ErrorMessage, &o.PMApproved, &o.PMNotes, &o.ClientApproved, &o.CorrectionNotes, &o.ReviewToken,
		&o.UploadFilename, &o.UploadContentType, &o.UploadSize, &o.UploadedAt,
		&o.CreatedAt, &o.UpdatedAt, &o.ApprovedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) CreateFromPayment(ctx context.Context, c repository.OrderCreation) (*model.Order, bool, error) {
	var order *model.Order
	created := false

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertEvent = `INSERT INTO payment_events (session_id, quote_id)
                             VALUES ($1, $2)
                             ON CONFLICT (session_id) DO NOTHING`
		tag, err := tx.Exec(ctx, insertEvent, c.SessionID, c.QuoteID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		lockQuote := `SELECT ` + quoteColumns + ` FROM quotes WHERE id=$1 FOR UPDATE`
		quote, err := scanQuote(tx.QueryRow(ctx, lockQuote, c.QuoteID))
		if err != nil {
			return err
		}
		if quote.Status == model.QuoteStatusPaid {
			return nil
		}

		const nextNumber = `INSERT INTO counters (name, value) VALUES ('order_number', 1)
                            ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
                            RETURNING value`
		var counter int64
		if err := tx.QueryRow(ctx, nextNumber).Scan(&counter); err != nil {
			return err
		}
		orderNumber := fmt.Sprintf("%s-%d", r.storage.numberPrefix, r.storage.numberOffset+counter)

		const aggregateText = `SELECT COALESCE(string_agg(extracted_text, E'\n\n' ORDER BY uploaded_at), '')
                               FROM documents WHERE id = ANY($1)`
		var originalText string
		if err := tx.QueryRow(ctx, aggregateText, quote.DocumentIDs).Scan(&originalText); err != nil {
			return err
		}

		status := model.StatusReceived
		if originalText == "" {
			status = model.StatusOCRPending
		}

		const insertOrder = `INSERT INTO orders (
                id, order_number, quote_id, session_id,
                customer_name, customer_email, customer_phone,
                service_tier, cert_type, delivery_speed, delivery_method,
                source_language, target_language, document_type, purpose,
                page_count, notes, document_ids, base_price, total_price, status,
                original_text, review_token
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
            RETURNING created_at, updated_at`
		o := &model.Order{
			ID:             c.OrderID,
			OrderNumber:    orderNumber,
			QuoteID:        quote.ID,
			SessionID:      c.SessionID,
			CustomerName:   quote.CustomerName,
			CustomerEmail:  quote.CustomerEmail,
			CustomerPhone:  quote.CustomerPhone,
			ServiceTier:    quote.ServiceTier,
			CertType:       quote.CertType,
			DeliverySpeed:  quote.DeliverySpeed,
			DeliveryMethod: quote.DeliveryMethod,
			SourceLanguage: quote.SourceLanguage,
			TargetLanguage: quote.TargetLanguage,
			DocumentType:   quote.DocumentType,
			Purpose:        quote.Purpose,
			PageCount:      quote.Breakdown.PageCount,
			Notes:          quote.Notes,
			DocumentIDs:    quote.DocumentIDs,
			BasePrice:      quote.Breakdown.BasePrice,
			TotalPrice:     quote.Breakdown.TotalPrice,
			Status:         status,
			OriginalText:   originalText,
			ReviewToken:    c.ReviewToken,
		}
		err = tx.QueryRow(ctx, insertOrder,
			o.ID, o.OrderNumber, o.QuoteID, o.SessionID,
			o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			o.ServiceTier, o.CertType, o.DeliverySpeed, o.DeliveryMethod,
			o.SourceLanguage, o.TargetLanguage, o.DocumentType, o.Purpose,
			o.PageCount, o.Notes, o.DocumentIDs, o.BasePrice, o.TotalPrice, o.Status,
			o.OriginalText, o.ReviewToken,
		).Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}

		const flipQuote = `UPDATE quotes SET status=$1, order_id=$2, order_number=$3 WHERE id=$4`
		if _, err := tx.Exec(ctx, flipQuote, model.QuoteStatusPaid, o.ID, o.OrderNumber, quote.ID); err != nil {
			return err
		}

		order = o
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error) {
	const countQuery = `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.storage.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE ($1 = '' OR status = $1)
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// SelectForTranslation returns received orders that already have extracted
// text, oldest first. Orders without text wait for manual OCR and are never
// picked up automatically.
func (r *orderRepository) SelectForTranslation(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status = $1 AND original_text <> ''
              ORDER BY created_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, model.StatusReceived, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.Stats, error) {
	const query = `SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status IN ('completed', 'final')),
            COUNT(*) FILTER (WHERE status NOT IN ('completed', 'final')),
            COUNT(*) FILTER (WHERE status = 'pm_review'),
            COUNT(*) FILTER (WHERE status = 'corrections'),
            COALESCE(SUM(total_price), 0)
        FROM orders`
	var st model.Stats
	err := r.storage.pool.QueryRow(ctx, query).Scan(
		&st.TotalOrders, &st.Completed, &st.InProgress,
		&st.PendingPMReview, &st.CorrectionsRequested, &st.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// casUpdate runs a status-conditioned UPDATE and maps a zero-row result to
// ErrNotFound or ErrStatusConflict depending on whether the order exists.
func (r *orderRepository) casUpdate(ctx context.Context, id, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const exists = `SELECT 1 FROM orders WHERE id=$1`
	var one int
	if err := r.storage.pool.QueryRow(ctx, exists, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrStatusConflict
}

func (r *orderRepository) StartTranslation(ctx context.Context, id string, from model.TranslationStatus, originalText, instructions string) error {
	const query = `UPDATE orders
                   SET status=$1, original_text=$2, ai_instructions=$3, error_message='', updated_at=NOW()
                   WHERE id=$4 AND status=$5`
	return r.casUpdate(ctx, id, query, model.StatusTranslating, originalText, instructions, id, from)
}

func (r *orderRepository) SetTranslated(ctx context.Context, id, text string) error {
	const query = `UPDATE orders
                   SET status=$1, translated_text=$2, updated_at=NOW()
                   WHERE id=$3 AND status=$4`
	return r.casUpdate(ctx, id, query, model.StatusProofreading, text, id, model.StatusTranslating)
}

func (r *orderRepository) SetProofread(ctx context.Context, id, text, corrections string) error {
	const query = `UPDATE orders
                   SET status=$1, proofread_text=$2, ai_corrections=$3, updated_at=NOW()
                   WHERE id=$4 AND status=$5`
	return r.casUpdate(ctx, id, query, model.StatusPMReview, text, corrections, id, model.StatusProofreading)
}

func (r *orderRepository) SetTranslationError(ctx context.Context, id string, from model.TranslationStatus, message string) error {
	const query = `UPDATE orders
                   SET status=$1, error_message=$2, updated_at=NOW()
                   WHERE id=$3 AND status=$4`
	return r.casUpdate(ctx, id, query, model.StatusTranslationError, message, id, from)
}

func (r *orderRepository) ApprovePM(ctx context.Context, id, notes, reviewToken string) error {
	const query = `UPDATE orders
                   SET status=$1, pm_approved=TRUE, pm_notes=$2, review_token=$3, updated_at=NOW()
                   WHERE id=$4 AND status=$5`
	return r.casUpdate(ctx, id, query, model.StatusClientReview, notes, reviewToken, id, model.StatusPMReview)
}

func (r *orderRepository) ClientApprove(ctx context.Context, id string) error {
	const query = `UPDATE orders
                   SET status=$1, client_approved=TRUE, approved_at=NOW(), updated_at=NOW()
                   WHERE id=$2 AND status=$3`
	return r.casUpdate(ctx, id, query, model.StatusApproved, id, model.StatusClientReview)
}

func (r *orderRepository) RequestCorrections(ctx context.Context, id, notes string) error {
	const query = `UPDATE orders
                   SET status=$1, correction_notes=$2, client_approved=FALSE, updated_at=NOW()
                   WHERE id=$3 AND status=$4`
	return r.casUpdate(ctx, id, query, model.StatusCorrections, notes, id, model.StatusClientReview)
}

func (r *orderRepository) MarkCompleted(ctx context.Context, id string) error {
	const query = `UPDATE orders
                   SET status=$1, completed_at=NOW(), updated_at=NOW()
                   WHERE id=$2 AND status=$3`
	return r.casUpdate(ctx, id, query, model.StatusCompleted, id, model.StatusApproved)
}

func (r *orderRepository) UpdateProofreadText(ctx context.Context, id, text string) error {
	const query = `UPDATE orders SET proofread_text=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, text, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) AttachPMUpload(ctx context.Context, id string, from model.TranslationStatus, upload model.PMUpload) error {
	const query = `UPDATE orders
                   SET status=$1, upload_filename=$2, upload_content_type=$3, upload_size=$4,
                       upload_data=$5, uploaded_at=NOW(), updated_at=NOW()
                   WHERE id=$6 AND status=$7`
	return r.casUpdate(ctx, id, query,
		model.StatusPMUploadReady, upload.Filename, upload.ContentType, upload.Size, upload.Data, id, from)
}

func (r *orderRepository) Finalize(ctx context.Context, id string) error {
	const query = `UPDATE orders
                   SET status=$1, completed_at=NOW(), updated_at=NOW()
                   WHERE id=$2 AND status=$3`
	return r.casUpdate(ctx, id, query, model.StatusFinal, id, model.StatusPMUploadReady)
}

func (r *orderRepository) GetPMUpload(ctx context.Context, id string) (*model.PMUpload, error) {
	const query = `SELECT upload_filename, upload_content_type, upload_size, upload_data, uploaded_at
                   FROM orders WHERE id=$1 AND upload_filename <> ''`
	var u model.PMUpload
	var uploadedAt *time.Time
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.Filename, &u.ContentType, &u.Size, &u.Data, &uploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if uploadedAt != nil {
		u.UploadedAt = *uploadedAt
	}
	return &u, nil
}

func (r *orderRepository) SetReviewToken(ctx context.Context, id, token string) error {
	const query = `UPDATE orders SET review_token=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, token, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
