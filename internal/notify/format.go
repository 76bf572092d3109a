package notify

import (
	"fmt"
	"strings"
)

// notProvided substitutes for any field a channel needs but the event does
// not carry; rendering never fails on missing data.
const notProvided = "not provided"

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

// EmailSubject builds the channel subject line for an event.
func EmailSubject(ev Event) string {
	switch ev.Kind {
	case KindOrderPlaced:
		return fmt.Sprintf("Order confirmation - %s", orNotProvided(ev.Reference))
	default:
		return fmt.Sprintf("Visit notification - %s", orNotProvided(ev.PartyName))
	}
}

// EmailHTML renders the structured HTML body for the email channel.
func EmailHTML(ev Event) string {
	var b strings.Builder
	switch ev.Kind {
	case KindOrderPlaced:
		fmt.Fprintf(&b, "<h2>Order confirmation</h2>")
		fmt.Fprintf(&b, "<p>Hello %s,</p>", orNotProvided(ev.PartyName))
		fmt.Fprintf(&b, "<p>Your order has been recorded and the supplier has been notified.</p>")
		fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s</p>", orNotProvided(ev.Reference))
		fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", orNotProvided(ev.Date))
		fmt.Fprintf(&b, "<p><strong>Supplier:</strong> %s</p>", orNotProvided(ev.Company))
		if len(ev.Items) > 0 {
			b.WriteString("<h3>Ordered items:</h3><ul>")
			for _, item := range ev.Items {
				fmt.Fprintf(&b, "<li>%s (%d x %.2f MAD)</li>", item.Name, item.Quantity, item.UnitPrice)
			}
			b.WriteString("</ul>")
		}
		fmt.Fprintf(&b, "<p><strong>Total:</strong> %s</p>", orNotProvided(ev.Amount))
		fmt.Fprintf(&b, "<p><strong>Justification:</strong> %s</p>", orNotProvided(ev.Summary))
		fmt.Fprintf(&b, "<p>You will be informed when your order is delivered.</p>")
	default:
		fmt.Fprintf(&b, "<h2>Visit notification</h2>")
		fmt.Fprintf(&b, "<p>A visitor is expected:</p><ul>")
		fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>", orNotProvided(ev.PartyName))
		fmt.Fprintf(&b, "<li><strong>Company:</strong> %s</li>", orNotProvided(ev.Company))
		fmt.Fprintf(&b, "<li><strong>Date:</strong> %s</li>", orNotProvided(ev.Date))
		fmt.Fprintf(&b, "<li><strong>Time:</strong> %s</li>", orNotProvided(ev.Time))
		fmt.Fprintf(&b, "<li><strong>Internal contact:</strong> %s</li>", orNotProvided(ev.Contact))
		fmt.Fprintf(&b, "<li><strong>Reference:</strong> %s</li>", orNotProvided(ev.Reference))
		b.WriteString("</ul>")
		fmt.Fprintf(&b, "<p>Please prepare access for this visitor.</p>")
	}
	return b.String()
}

// PlainText renders the plain templated body used by the WhatsApp channel.
func PlainText(ev Event) string {
	var b strings.Builder
	switch ev.Kind {
	case KindOrderPlaced:
		fmt.Fprintf(&b, "*New order - %s*\n\n", orNotProvided(ev.PartyName))
		fmt.Fprintf(&b, "*Reference:* %s\n", orNotProvided(ev.Reference))
		fmt.Fprintf(&b, "*Date:* %s\n", orNotProvided(ev.Date))
		fmt.Fprintf(&b, "*Supplier:* %s\n\n", orNotProvided(ev.Company))
		if len(ev.Items) > 0 {
			b.WriteString("*Ordered items:*\n")
			for _, item := range ev.Items {
				fmt.Fprintf(&b, "- %s (%d x %.2f MAD)\n", item.Name, item.Quantity, item.UnitPrice)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "*Total:* %s\n\n", orNotProvided(ev.Amount))
		fmt.Fprintf(&b, "*Justification:* %s\n\n", orNotProvided(ev.Summary))
		b.WriteString("Please confirm delivery.")
	default:
		fmt.Fprintf(&b, "*Visitor arrival - %s*\n\n", orNotProvided(ev.PartyName))
		fmt.Fprintf(&b, "*Reference:* %s\n", orNotProvided(ev.Reference))
		fmt.Fprintf(&b, "*Company:* %s\n", orNotProvided(ev.Company))
		fmt.Fprintf(&b, "*Date:* %s %s\n", orNotProvided(ev.Date), ev.Time)
		fmt.Fprintf(&b, "*Internal contact:* %s\n", orNotProvided(ev.Contact))
		fmt.Fprintf(&b, "*Purpose:* %s\n", orNotProvided(ev.Summary))
	}
	return b.String()
}
