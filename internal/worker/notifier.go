package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tradux/backend/internal/adapter/mailer"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/mail"
)

// NotifierOptions configures recipients and the review link base.
type NotifierOptions struct {
	OperatorEmail string
	ReviewBaseURL string
	Workers       int
	QueueSize     int
}

type notification struct {
	kind       string
	order      model.Order
	detail     string
	attachment *model.PMUpload
}

// Notifier delivers e-mail notifications from a bounded queue. Enqueueing
// never blocks: when the queue is full the notification is dropped and
// logged, an e-mail is not worth stalling a webhook response for.
type Notifier struct {
	client mailer.Client
	logger *slog.Logger
	opts   NotifierOptions

	queue  chan notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotifier constructs the notification dispatcher.
func NewNotifier(client mailer.Client, opts NotifierOptions, logger *slog.Logger) *Notifier {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	return &Notifier{
		client: client,
		logger: logger,
		opts:   opts,
		queue:  make(chan notification, opts.QueueSize),
	}
}

// Start launches delivery workers.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	for i := 0; i < n.opts.Workers; i++ {
		n.wg.Add(1)
		go n.worker(runCtx)
	}
}

// Stop waits for in-flight deliveries to finish. Queued notifications that
// have not been picked up yet are dropped.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()

	n.wg.Wait()
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-n.queue:
			n.deliver(ctx, item)
		}
	}
}

func (n *Notifier) enqueue(item notification) {
	select {
	case n.queue <- item:
	default:
		n.logger.Warn("notification queue full, dropping",
			slog.String("kind", item.kind),
			slog.String("order_number", item.order.OrderNumber))
	}
}

// OrderCreated queues the client confirmation and the operator alert.
func (n *Notifier) OrderCreated(order *model.Order) {
	n.enqueue(notification{kind: "order_confirmation", order: *order})
	n.enqueue(notification{kind: "operator_new_order", order: *order})
}

// PMReviewReady queues the operator alert that an order finished both AI
// stages and awaits review.
func (n *Notifier) PMReviewReady(order *model.Order) {
	n.enqueue(notification{kind: "pm_review_ready", order: *order})
}

// TranslationReady queues the review invitation.
func (n *Notifier) TranslationReady(order *model.Order, reviewToken string) {
	n.enqueue(notification{kind: "translation_ready", order: *order, detail: reviewToken})
}

// ClientApproved queues the operator alert about the sign-off.
func (n *Notifier) ClientApproved(order *model.Order, notes string) {
	n.enqueue(notification{kind: "client_approved", order: *order, detail: notes})
}

// CorrectionsRequested queues the operator alert about the change request and
// the client acknowledgement.
func (n *Notifier) CorrectionsRequested(order *model.Order, notes string) {
	n.enqueue(notification{kind: "corrections_requested", order: *order, detail: notes})
	n.enqueue(notification{kind: "corrections_received", order: *order, detail: notes})
}

// OrderDelivered queues the delivery mail, attaching the final document when
// one exists and falling back to the proofread text otherwise.
func (n *Notifier) OrderDelivered(order *model.Order, attachment *model.PMUpload) {
	n.enqueue(notification{kind: "order_delivered", order: *order, attachment: attachment})
}

// PipelineFailed queues the operator alert about a broken pipeline run.
func (n *Notifier) PipelineFailed(order *model.Order, message string) {
	n.enqueue(notification{kind: "pipeline_failed", order: *order, detail: message})
}

func (n *Notifier) deliver(ctx context.Context, item notification) {
	msg, err := n.compose(item)
	if err != nil {
		n.logger.Error("failed to compose notification",
			slog.String("kind", item.kind), slog.String("error", err.Error()))
		return
	}
	if len(msg.To) == 0 {
		return
	}
	if err := n.client.Send(ctx, msg); err != nil {
		n.logger.Error("failed to send notification",
			slog.String("kind", item.kind),
			slog.String("order_number", item.order.OrderNumber),
			slog.String("error", err.Error()))
		return
	}
	n.logger.Info("notification sent",
		slog.String("kind", item.kind),
		slog.String("order_number", item.order.OrderNumber))
}

func (n *Notifier) compose(item notification) (mailer.Message, error) {
	order := &item.order
	var (
		subject string
		html    string
		err     error
		msg     mailer.Message
	)

	switch item.kind {
	case "order_confirmation":
		subject, html, err = mail.OrderConfirmation(order)
		msg.To = recipients(order.CustomerEmail)
	case "operator_new_order":
		subject, html, err = mail.OperatorNewOrder(order)
		msg.To = recipients(n.opts.OperatorEmail)
	case "pm_review_ready":
		subject, html, err = mail.PMReviewReady(order)
		msg.To = recipients(n.opts.OperatorEmail)
	case "translation_ready":
		reviewURL := fmt.Sprintf("%s/review/%s?token=%s", n.opts.ReviewBaseURL, order.ID, item.detail)
		subject, html, err = mail.TranslationReady(order, reviewURL)
		msg.To = recipients(order.CustomerEmail)
	case "client_approved":
		subject, html, err = mail.ClientApproved(order, item.detail)
		msg.To = recipients(n.opts.OperatorEmail)
	case "corrections_requested":
		subject, html, err = mail.CorrectionsRequested(order, item.detail)
		msg.To = recipients(n.opts.OperatorEmail)
	case "corrections_received":
		subject, html, err = mail.CorrectionsReceived(order, item.detail)
		msg.To = recipients(order.CustomerEmail)
	case "order_delivered":
		subject, html, err = mail.OrderDelivered(order)
		msg.To = recipients(order.CustomerEmail)
		if item.attachment != nil {
			msg.Attachments = []mailer.Attachment{{
				Filename: item.attachment.Filename,
				Data:     item.attachment.Data,
			}}
		} else if order.ProofreadText != "" {
			msg.Attachments = []mailer.Attachment{{
				Filename: fmt.Sprintf("%s-translation.txt", order.OrderNumber),
				Data:     []byte(order.ProofreadText),
			}}
		}
	case "pipeline_failed":
		subject, html, err = mail.PipelineFailed(order, item.detail)
		msg.To = recipients(n.opts.OperatorEmail)
	default:
		return msg, fmt.Errorf("unknown notification kind %q", item.kind)
	}
	if err != nil {
		return msg, err
	}

	msg.Subject = subject
	msg.HTML = html
	return msg, nil
}

func recipients(addr string) []string {
	if addr == "" {
		return nil
	}
	return []string{addr}
}
