package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRestaurantName appears in the title line of every order message.
const DefaultRestaurantName = "KING BURGUER"

const orderSeparator = "--------------------------------\n"

// ErrEmptyCart is returned when checking out a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// ParsePaymentMethod accepts the three known methods. An empty value selects
// PIX, the checkout form default.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PaymentPix, nil
	case PaymentPix, PaymentCard, PaymentCash:
		return m, nil
	default:
		return "", newValidationError("paymentMethod", "Forma de pagamento inválida.")
	}
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentPix:
		return "PIX"
	case PaymentCard:
		return "Cartão"
	default:
		return "Dinheiro"
	}
}

// CheckoutRequest carries the customer fields of the checkout form.
type CheckoutRequest struct {
	CustomerName  string `json:"customerName"`
	Location      string `json:"location"`
	PaymentMethod string `json:"paymentMethod"`
}

type OrderLine struct {
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Observation string          `json:"observation,omitempty"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the transient snapshot of a checkout. It is never persisted.
type Order struct {
	CustomerName  string          `json:"customerName"`
	Location      string          `json:"location"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Lines         []OrderLine     `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}

// ComposeOrder validates the checkout fields and snapshots the cart lines.
// Nothing is produced when validation fails.
func ComposeOrder(req CheckoutRequest, items []CartItem) (*Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, newValidationError("customerName", "Por favor, informe seu nome.")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, newValidationError("location", "Por favor, informe seu endereço ou número da mesa.")
	}
	method, err := ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		CustomerName:  req.CustomerName,
		Location:      req.Location,
		PaymentMethod: method,
		Lines:         make([]OrderLine, len(items)),
		Total:         decimal.Zero,
	}
	for i, item := range items {
		order.Lines[i] = OrderLine{
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Observation: item.Observation,
		}
		order.Total = order.Total.Add(order.Lines[i].Subtotal())
	}
	return order, nil
}

// Text renders the order as the chat message sent to the restaurant.
func (o *Order) Text(restaurant string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*🍔 NOVO PEDIDO - %s*\n", restaurant)
	b.WriteString(orderSeparator)
	fmt.Fprintf(&b, "*Cliente:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "*Local:* %s\n", o.Location)
	fmt.Fprintf(&b, "*Pagamento:* %s\n", o.PaymentMethod.Label())
	b.WriteString(orderSeparator)
	b.WriteString("\n")

	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%dx %s\n", line.Quantity, line.Name)
		if line.Observation != "" {
			fmt.Fprintf(&b, "   _Obs: %s_\n", line.Observation)
		}
		fmt.Fprintf(&b, "   R$ %s\n\n", FormatCurrency(line.Subtotal()))
	}

	b.WriteString(orderSeparator)
	fmt.Fprintf(&b, "*💰 TOTAL: R$ %s*\n", FormatCurrency(o.Total))
	return b.String()
}

// FormatCurrency renders an amount with two decimals and a comma separator.
func FormatCurrency(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// DeepLink addresses a chat recipient, e.g. wa.me/5511999999999.
type DeepLink struct {
	Host      string
	Recipient string
}

// URL builds the link that opens a chat pre-filled with text.
func (l DeepLink) URL(text string) string {
	return fmt.Sprintf("https://%s/%s?text=%s", l.Host, l.Recipient, EncodeURIComponent(text))
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for a URI component:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
