// Package mail renders the notification e-mails sent to clients and to the
// operator inbox.
package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tradux/backend/internal/domain/model"
)

var orderConfirmation = template.Must(template.New("orderConfirmation").Parse(`
<h2>Thank you for your order!</h2>
<p>Your certified translation order <strong>{{.OrderNumber}}</strong> has been received and is now being processed.</p>
<ul>
	<li>Language pair: {{.SourceLang}} &rarr; {{.TargetLang}}</li>
	<li>Pages: {{.PageCount}}</li>
	<li>Total paid: ${{printf "%.2f" .TotalPrice}}</li>
</ul>
<p>We will e-mail you as soon as your translation is ready for review.</p>
`))

var translationReady = template.Must(template.New("translationReady").Parse(`
<h2>Your translation is ready for review</h2>
<p>Order <strong>{{.OrderNumber}}</strong> has been translated and checked by our team.</p>
<p><a href="{{.ReviewURL}}">Review your translation</a></p>
<p>You can approve it or request corrections directly from the review page.</p>
`))

var clientApproved = template.Must(template.New("clientApproved").Parse(`
<h2>Client approved order {{.OrderNumber}}</h2>
<p>The client has approved the translation. The order is ready for certification and delivery.</p>
{{if .Notes}}<p>Client notes: {{.Notes}}</p>{{end}}
`))

var correctionsRequested = template.Must(template.New("correctionsRequested").Parse(`
<h2>Corrections requested on order {{.OrderNumber}}</h2>
<p>The client has requested changes to the translation.</p>
<p>Notes: {{.Notes}}</p>
`))

var pmReviewReady = template.Must(template.New("pmReviewReady").Parse(`
<h2>Order {{.OrderNumber}} is ready for PM review</h2>
<p>Both AI stages completed. The proofread translation is waiting for your review and approval.</p>
<ul>
	<li>Client: {{.ClientEmail}}</li>
	<li>Language pair: {{.SourceLang}} &rarr; {{.TargetLang}}</li>
	<li>Pages: {{.PageCount}}</li>
</ul>
`))

var correctionsReceived = template.Must(template.New("correctionsReceived").Parse(`
<h2>We received your correction request</h2>
<p>Our team is reviewing your notes on order <strong>{{.OrderNumber}}</strong> and will send you an updated translation shortly.</p>
{{if .Notes}}<p>Your notes: {{.Notes}}</p>{{end}}
`))

var orderDelivered = template.Must(template.New("orderDelivered").Parse(`
<h2>Your certified translation is attached</h2>
<p>Order <strong>{{.OrderNumber}}</strong> is complete. The final document is attached to this e-mail.</p>
<p>Thank you for choosing us for your certified translation.</p>
`))

var pipelineFailed = template.Must(template.New("pipelineFailed").Parse(`
<h2>Translation pipeline failed for order {{.OrderNumber}}</h2>
<p>The automated translation could not complete and the order needs manual attention.</p>
<p>Error: {{.Message}}</p>
`))

var operatorNewOrder = template.Must(template.New("operatorNewOrder").Parse(`
<h2>New paid order {{.OrderNumber}}</h2>
<ul>
	<li>Client: {{.ClientEmail}}</li>
	<li>Language pair: {{.SourceLang}} &rarr; {{.TargetLang}}</li>
	<li>Pages: {{.PageCount}}</li>
	<li>Tier: {{.Tier}}</li>
	<li>Total: ${{printf "%.2f" .TotalPrice}}</li>
</ul>
`))

type orderData struct {
	OrderNumber string
	ClientEmail string
	SourceLang  string
	TargetLang  string
	PageCount   int
	Tier        string
	TotalPrice  float64
	ReviewURL   string
	Notes       string
	Message     string
}

func dataFor(order *model.Order) orderData {
	return orderData{
		OrderNumber: order.OrderNumber,
		ClientEmail: order.CustomerEmail,
		SourceLang:  order.SourceLanguage,
		TargetLang:  order.TargetLanguage,
		PageCount:   order.PageCount,
		Tier:        order.ServiceTier,
		TotalPrice:  order.TotalPrice,
	}
}

func render(tmpl *template.Template, data orderData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// OrderConfirmation is sent to the client right after payment.
func OrderConfirmation(order *model.Order) (subject, html string, err error) {
	html, err = render(orderConfirmation, dataFor(order))
	return "Order confirmation " + order.OrderNumber, html, err
}

// TranslationReady is sent to the client with the review link.
func TranslationReady(order *model.Order, reviewURL string) (subject, html string, err error) {
	data := dataFor(order)
	data.ReviewURL = reviewURL
	html, err = render(translationReady, data)
	return "Your translation is ready for review " + order.OrderNumber, html, err
}

// ClientApproved alerts the operator that the client signed off.
func ClientApproved(order *model.Order, notes string) (subject, html string, err error) {
	data := dataFor(order)
	data.Notes = notes
	html, err = render(clientApproved, data)
	return "Client approved " + order.OrderNumber, html, err
}

// CorrectionsRequested alerts the operator about requested changes.
func CorrectionsRequested(order *model.Order, notes string) (subject, html string, err error) {
	data := dataFor(order)
	data.Notes = notes
	html, err = render(correctionsRequested, data)
	return "Corrections requested " + order.OrderNumber, html, err
}

// PMReviewReady alerts the operator that an order awaits PM review.
func PMReviewReady(order *model.Order) (subject, html string, err error) {
	html, err = render(pmReviewReady, dataFor(order))
	return "Ready for PM review " + order.OrderNumber, html, err
}

// CorrectionsReceived confirms to the client that their notes arrived.
func CorrectionsReceived(order *model.Order, notes string) (subject, html string, err error) {
	data := dataFor(order)
	data.Notes = notes
	html, err = render(correctionsReceived, data)
	return "We received your correction request " + order.OrderNumber, html, err
}

// OrderDelivered accompanies the final document attachment.
func OrderDelivered(order *model.Order) (subject, html string, err error) {
	html, err = render(orderDelivered, dataFor(order))
	return "Your certified translation " + order.OrderNumber, html, err
}

// PipelineFailed alerts the operator that automation broke on an order.
func PipelineFailed(order *model.Order, message string) (subject, html string, err error) {
	data := dataFor(order)
	data.Message = message
	html, err = render(pipelineFailed, data)
	return "Pipeline failure " + order.OrderNumber, html, err
}

// OperatorNewOrder alerts the operator inbox about a freshly paid order.
func OperatorNewOrder(order *model.Order) (subject, html string, err error) {
	html, err = render(operatorNewOrder, dataFor(order))
	return "New order " + order.OrderNumber, html, err
}
