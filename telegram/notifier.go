package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"resto-pos/logger"
	"resto-pos/utils"
)

var ErrDisabled = errors.New("telegram notifications are disabled")

const displayTime = "02/01/2006 15:04:05"

type Credentials struct {
	BotToken string
	ChatID   string
	Enabled  bool
}

// CanNotify reports whether outbound notifications may be sent.
func (c Credentials) CanNotify() bool {
	return c.Enabled && c.BotToken != "" && c.ChatID != ""
}

// CanPoll reports whether the command bot may run.
func (c Credentials) CanPoll() bool {
	return c.Enabled && c.BotToken != ""
}

// CredentialsSource is read at call time so settings edits apply immediately.
type CredentialsSource interface {
	TelegramCredentials(ctx context.Context) (Credentials, error)
}

type NoticeItem struct {
	Name     string
	Plate    string
	Quantity int
	Price    float64
}

type OrderNotice struct {
	OrderID     uint
	Table       string
	Items       []NoticeItem
	Total       float64
	PaymentMode string
	At          time.Time
}

func (n OrderNotice) tableLabel() string {
	if n.Table == "" {
		return "Takeaway"
	}
	return html.EscapeString(n.Table)
}

type Notifier struct {
	client *Client
	creds  CredentialsSource
	log    *logger.Logger
}

func NewNotifier(client *Client, creds CredentialsSource, log *logger.Logger) *Notifier {
	return &Notifier{client: client, creds: creds, log: log.WithComponent("telegram_notifier")}
}

func (n *Notifier) NotifyNewOrder(ctx context.Context, notice OrderNotice) error {
	return n.send(ctx, FormatNewOrder(notice))
}

func (n *Notifier) NotifyPayment(ctx context.Context, notice OrderNotice) error {
	return n.send(ctx, FormatPayment(notice))
}

// SendTest sends a connection test message.
func (n *Notifier) SendTest(ctx context.Context) error {
	msg := "✅ <b>Telegram Connection Test</b>\n"
	msg += fmt.Sprintf("📅 %s\n", time.Now().Format(displayTime))
	msg += "This is a test message from Restaurant Billing System."
	return n.send(ctx, msg)
}

func (n *Notifier) send(ctx context.Context, text string) error {
	creds, err := n.creds.TelegramCredentials(ctx)
	if err != nil {
		return fmt.Errorf("load telegram settings: %w", err)
	}
	if !creds.CanNotify() {
		return ErrDisabled
	}
	if err := n.client.SendMessage(ctx, creds.BotToken, OutgoingMessage{
		ChatID:    creds.ChatID,
		Text:      text,
		ParseMode: "HTML",
	}); err != nil {
		n.log.Warn("telegram notification failed", "error", err)
		return err
	}
	return nil
}

func FormatNewOrder(n OrderNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 <b>NEW ORDER #%03d</b>\n", n.OrderID)
	fmt.Fprintf(&b, "📅 %s\n", n.At.Format(displayTime))
	fmt.Fprintf(&b, "🪑 <b>Table:</b> %s\n", n.tableLabel())
	fmt.Fprintf(&b, "💵 <b>Total:</b> %s\n\n", utils.FormatMoney("₹", n.Total))
	b.WriteString("<b>Items:</b>\n")
	for _, item := range n.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "• %dx %s (%s) - ₹%.0f\n", qty, html.EscapeString(item.Name), strings.ToUpper(item.Plate), item.Price)
	}
	return b.String()
}

func FormatPayment(n OrderNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 <b>ORDER PAID #%03d</b>\n", n.OrderID)
	fmt.Fprintf(&b, "📅 %s\n", n.At.Format(displayTime))
	fmt.Fprintf(&b, "🪑 <b>Table:</b> %s\n", n.tableLabel())
	fmt.Fprintf(&b, "💳 <b>Payment:</b> %s\n", html.EscapeString(n.PaymentMode))
	fmt.Fprintf(&b, "💵 <b>Amount:</b> %s\n", utils.FormatMoney("₹", n.Total))
	return b.String()
}
