package usecase

import "github.com/tradux/backend/internal/domain/model"

// Notifier queues e-mail notifications for asynchronous delivery. All calls
// are fire-and-forget: a full queue or a mailer outage never fails the
// operation that triggered the notification.
type Notifier interface {
	OrderCreated(order *model.Order)
	PMReviewReady(order *model.Order)
	TranslationReady(order *model.Order, reviewToken string)
	ClientApproved(order *model.Order, notes string)
	CorrectionsRequested(order *model.Order, notes string)
	OrderDelivered(order *model.Order, attachment *model.PMUpload)
	PipelineFailed(order *model.Order, message string)
}

// NopNotifier discards all notifications, used in tests.
type NopNotifier struct{}

func (NopNotifier) OrderCreated(*model.Order)                    {}
func (NopNotifier) PMReviewReady(*model.Order)                   {}
func (NopNotifier) TranslationReady(*model.Order, string)        {}
func (NopNotifier) ClientApproved(*model.Order, string)          {}
func (NopNotifier) CorrectionsRequested(*model.Order, string)    {}
func (NopNotifier) OrderDelivered(*model.Order, *model.PMUpload) {}
func (NopNotifier) PipelineFailed(*model.Order, string)          {}
