package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/karanxgill/AllHoursCafe/entity"
)

// Mailer sends one HTML message. Checkout treats every send as best-effort:
// a down mail server never fails an order.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := m.Host + ":" + m.Port
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(b.String()))
}

// OrderConfirmationBody renders the confirmation mail for a paid order.
func OrderConfirmationBody(o *entity.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your order!</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your order #%d has been confirmed.</p>", o.CustomerName, o.ID)
	b.WriteString("<table border=\"0\" cellpadding=\"4\">")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>x%d</td><td>%s</td></tr>",
			it.Name, it.Quantity, it.Total.StringFixed(2))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: %s<br/>Tax: %s<br/>Delivery fee: %s<br/><b>Total: %s</b></p>",
		o.SubTotal.StringFixed(2), o.Tax.StringFixed(2),
		o.DeliveryFee.StringFixed(2), o.Total.StringFixed(2))
	if o.OrderType == entity.OrderTypeDelivery {
		fmt.Fprintf(&b, "<p>Delivering to: %s, %s, %s %s</p>",
			o.DeliveryAddress, o.City, o.State, o.PostalCode)
	} else {
		b.WriteString("<p>Your order will be ready for pickup.</p>")
	}
	return b.String()
}

// ReservationConfirmationBody renders the confirmation mail for a paid
// reservation deposit.
func ReservationConfirmationBody(r *entity.Reservation) string {
	var b strings.Builder
	b.WriteString("<h2>Your table is booked!</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your reservation for %d guest(s) on %s at %s is confirmed.</p>",
		r.Name, r.NumberOfGuests,
		r.ReservationDate.Format("Mon, 02 Jan 2006"),
		r.ReservationTime.Format("15:04"))
	fmt.Fprintf(&b, "<p>Deposit paid: %s</p>", r.PaymentAmount.StringFixed(2))
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "<p>Special requests: %s</p>", r.SpecialRequests)
	}
	return b.String()
}
