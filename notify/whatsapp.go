package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
)

// HandoffURL builds the wa.me link that hands the finished order to the
// store over WhatsApp with the summary prefilled.
func HandoffURL(storePhone string, order *models.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		digitsOnly(storePhone), url.QueryEscape(HandoffMessage(order)))
}

// HandoffMessage renders the order summary sent to the store.
func HandoffMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido #%s*\n\n", shortID(order.ID))
	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	if order.CustomerPhone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", order.CustomerPhone)
	}

	b.WriteString("\n*Itens:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s — R$ %.2f\n", item.Quantity, item.Name, item.UnitPrice*float64(item.Quantity))
	}

	if order.DeliveryMethod == models.DeliveryMethodDelivery {
		fmt.Fprintf(&b, "\nEntrega: %s\n", order.CustomerAddress)
		fmt.Fprintf(&b, "Taxa de entrega: R$ %.2f\n", order.DeliveryFee)
	} else {
		b.WriteString("\nRetirada no local\n")
	}

	fmt.Fprintf(&b, "Pagamento: %s\n", paymentLabel(order.PaymentMethod))
	if order.Observation != "" {
		fmt.Fprintf(&b, "Obs: %s\n", order.Observation)
	}
	fmt.Fprintf(&b, "\n*Total: R$ %.2f*", order.Total)

	return b.String()
}

func paymentLabel(method models.PaymentMethod) string {
	switch method {
	case models.PaymentMethodPix:
		return "PIX"
	case models.PaymentMethodCard:
		return "Cartão"
	case models.PaymentMethodCash:
		return "Dinheiro"
	default:
		return string(method)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
