package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/shopspring/decimal"
)

// orderEmail is the view passed to both order templates.
type orderEmail struct {
	Order      *models.Order
	TotalDays  int
	TotalPrice decimal.Decimal
	Lines      []orderEmailLine
}

type orderEmailLine struct {
	models.OrderItem
	Subtotal decimal.Decimal
}

func newOrderEmail(order *models.Order) orderEmail {
	days := order.TotalDays()
	lines := make([]orderEmailLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, orderEmailLine{
			OrderItem: item,
			Subtotal:  item.Subtotal(days),
		})
	}
	return orderEmail{
		Order:      order,
		TotalDays:  days,
		TotalPrice: order.TotalPrice(),
		Lines:      lines,
	}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>STYCLY</h1>
<h2>Thank you for your rental request!</h2>
<p>Dear {{.Order.Name}},</p>
<p>We've received your rental request and will contact you shortly with a personalized quote.</p>
<h3>Order Details:</h3>
<p><strong>Order ID:</strong> #{{.Order.ID}}</p>
<p><strong>Rental Period:</strong> {{.Order.StartDate.Format "January 2, 2006"}} - {{.Order.EndDate.Format "January 2, 2006"}} ({{.TotalDays}} days)</p>
<p><strong>Email:</strong> {{.Order.Email}}</p>
<p><strong>Phone:</strong> {{if .Order.Phone}}{{.Order.Phone}}{{else}}Not provided{{end}}</p>
<h3>Items Requested:</h3>
{{range .Lines}}<div><strong>{{.Title}}</strong><br>Quantity: {{.Quantity}} | Daily Price: &euro;{{.DailyPrice.StringFixed 2}}</div>
{{end}}<p><strong>Estimated Total:</strong> &euro;{{.TotalPrice.StringFixed 2}}</p>
{{if .Order.Notes}}<p><strong>Notes:</strong> {{.Order.Notes}}</p>{{end}}
<p>We'll review your request and get back to you within 24 hours with availability confirmation and final pricing.</p>
</body>
</html>`))

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>New Rental Request</h1>
<h2>Order #{{.Order.ID}}</h2>
<p><strong>Received:</strong> {{.Order.CreatedAt.Format "January 2, 2006 at 3:04 PM"}}</p>
<h3>Customer Information:</h3>
<p>Name: {{.Order.Name}}<br>Email: {{.Order.Email}}<br>Phone: {{if .Order.Phone}}{{.Order.Phone}}{{else}}Not provided{{end}}</p>
<h3>Rental Details:</h3>
<p>Start Date: {{.Order.StartDate.Format "January 2, 2006"}}<br>End Date: {{.Order.EndDate.Format "January 2, 2006"}}<br>Total Days: {{.TotalDays}} days</p>
<h3>Items Requested:</h3>
{{range .Lines}}<div><strong>{{.Title}}</strong> (ID: {{.ItemID}})<br>Size: {{.Size}} | Age: {{.AgeRange}}<br>Quantity: {{.Quantity}} | Daily Price: &euro;{{.DailyPrice.StringFixed 2}} | Subtotal: &euro;{{.Subtotal.StringFixed 2}}</div>
{{end}}<h3>Pricing Summary:</h3>
<p><strong>Estimated Total:</strong> &euro;{{.TotalPrice.StringFixed 2}}</p>
{{if .Order.Notes}}<h3>Customer Notes:</h3><p>{{.Order.Notes}}</p>{{end}}
<p><em>Please review this request and contact the customer within 24 hours.</em></p>
</body>
</html>`))

// BuildOrderConfirmation renders the customer-facing confirmation email.
func BuildOrderConfirmation(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Stycly - Rental Request Confirmation #%s", order.ID)
	return subject, render(confirmationTmpl, order)
}

// BuildOrderNotification renders the internal operations notification.
func BuildOrderNotification(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("New Rental Request #%s - %s", order.ID, order.Name)
	return subject, render(notificationTmpl, order)
}

func render(tmpl *template.Template, order *models.Order) string {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, newOrderEmail(order)); err != nil {
		// Static templates over a strings.Builder cannot fail at execute time.
		return ""
	}
	return sb.String()
}
