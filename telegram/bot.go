package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"resto-pos/logger"
	"resto-pos/utils"
)

const (
	pollTimeoutSec    = 5
	defaultRetryDelay = 5 * time.Second
	billsLimit        = 20
	salesDays         = 30
)

type BillSummary struct {
	ID    uint
	Table string
	Date  time.Time
	Total float64
}

type BillItem struct {
	Quantity int
	Name     string
	Total    float64
}

type BillDetail struct {
	BillSummary
	Items         []BillItem
	Subtotal      float64
	ServiceCharge float64
	Tax           float64
	Discount      float64
}

type DaySales struct {
	Date   string
	Orders int
	Sales  float64
	Recent []BillSummary
}

type PeriodSales struct {
	Days        int
	TodayOrders int
	TodaySales  float64
	Orders      int
	Sales       float64
}

type CategoryCount struct {
	Category string
	Count    int
}

type MenuSummary struct {
	Total      int
	Categories []CategoryCount
}

// Reports is everything the bot may see. It has no write operations.
type Reports interface {
	TodaySales(ctx context.Context) (DaySales, error)
	SalesSince(ctx context.Context, days int) (PeriodSales, error)
	TodayBills(ctx context.Context, limit int) ([]BillSummary, error)
	// Bill returns nil when the order does not exist.
	Bill(ctx context.Context, id uint) (*BillDetail, error)
	MenuSummary(ctx context.Context) (MenuSummary, error)
}

// Bot long-polls getUpdates and answers read-only report commands.
type Bot struct {
	client     *Client
	creds      CredentialsSource
	reports    Reports
	log        *logger.Logger
	name       string
	retryDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	offset int64
}

func NewBot(client *Client, creds CredentialsSource, reports Reports, restaurantName string, log *logger.Logger) *Bot {
	return &Bot{
		client:     client,
		creds:      creds,
		reports:    reports,
		log:        log.WithComponent("telegram_bot"),
		name:       restaurantName,
		retryDelay: defaultRetryDelay,
	}
}

// Start launches the polling goroutine. It is a no-op when already running.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		return nil
	}

	creds, err := b.creds.TelegramCredentials(ctx)
	if err != nil {
		return fmt.Errorf("load telegram settings: %w", err)
	}
	if !creds.CanPoll() {
		return ErrDisabled
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = make(chan struct{})
	go b.run(runCtx, creds.BotToken, b.done)
	b.log.Info("telegram bot polling started")
	return nil
}

// Stop cancels polling and waits for the goroutine to exit.
func (b *Bot) Stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	b.log.Info("telegram bot polling stopped")
}

func (b *Bot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}

func (b *Bot) run(ctx context.Context, token string, done chan struct{}) {
	defer close(done)
	for {
		if ctx.Err() != nil {
			return
		}
		if err := b.poll(ctx, token); err != nil {
			if ctx.Err() != nil {
				return
			}
			b.log.Warn("bot polling error", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(b.retryDelay):
			}
		}
	}
}

func (b *Bot) poll(ctx context.Context, token string) error {
	updates, err := b.client.GetUpdates(ctx, token, b.offset+1, pollTimeoutSec)
	if err != nil {
		return err
	}
	for _, u := range updates {
		b.offset = u.UpdateID
		if u.Message == nil {
			continue
		}
		reply, ok := b.Handle(ctx, u.Message.Text)
		if !ok {
			continue
		}
		if err := b.client.SendMessage(ctx, token, OutgoingMessage{
			ChatID:    strconv.FormatInt(u.Message.Chat.ID, 10),
			Text:      reply,
			ParseMode: "Markdown",
		}); err != nil {
			b.log.Warn("bot reply failed", "error", err, "chat_id", u.Message.Chat.ID)
		}
	}
	return nil
}

// Handle answers one command. ok is false for text that is not a command.
func (b *Bot) Handle(ctx context.Context, text string) (reply string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])
	// strip @BotName suffixes used in group chats
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}

	var err error
	switch command {
	case "/start":
		reply = b.startText()
	case "/help":
		reply = helpText
	case "/today":
		reply, err = b.today(ctx)
	case "/sales":
		reply, err = b.sales(ctx)
	case "/bills":
		reply, err = b.bills(ctx)
	case "/bill":
		reply, err = b.bill(ctx, parts[1:])
	case "/menu":
		reply, err = b.menu(ctx)
	default:
		reply = "Unknown command. Type /help for available commands."
	}
	if err != nil {
		b.log.Warn("bot command failed", "command", command, "error", err)
		reply = "Error: " + escapeMarkdown(err.Error())
	}
	return reply, true
}

const helpText = "*Available Commands:*\n\n" +
	"/today - Today's sales summary\n" +
	"/sales - Sales report (last 30 days)\n" +
	"/bills - List all bills today\n" +
	"/bill <number> - Get bill #number details\n" +
	"/menu - Menu summary by category\n" +
	"\n*Usage Examples:*\n" +
	"/today - See today's orders and revenue\n" +
	"/bill 123 - Get details of bill #123"

func (b *Bot) startText() string {
	var s strings.Builder
	fmt.Fprintf(&s, "*Welcome to %s Bot!*\n\n", escapeMarkdown(b.name))
	s.WriteString("*Available Commands:*\n")
	s.WriteString("/help - Show all commands\n")
	s.WriteString("/today - Today's sales report\n")
	s.WriteString("/sales - Sales report (last 30 days)\n")
	s.WriteString("/bills - List today's bills\n")
	s.WriteString("/bill <number> - Get bill details\n")
	s.WriteString("/menu - Menu summary")
	return s.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown guards free text placed in a legacy Markdown reply.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func tableOrTakeaway(t string) string {
	if t == "" {
		return "Takeaway"
	}
	return escapeMarkdown(t)
}

func (b *Bot) today(ctx context.Context) (string, error) {
	day, err := b.reports.TodaySales(ctx)
	if err != nil {
		return "", err
	}
	var s strings.Builder
	s.WriteString("*Today's Sales Report*\n\n")
	fmt.Fprintf(&s, "*Date:* %s\n", day.Date)
	fmt.Fprintf(&s, "*Total Orders:* %d\n", day.Orders)
	fmt.Fprintf(&s, "*Total Sales:* INR %s\n\n", utils.FormatAmount(day.Sales))
	if day.Orders > 0 {
		s.WriteString("*Recent Orders:*\n")
		recent := day.Recent
		if len(recent) > 5 {
			recent = recent[:5]
		}
		for _, o := range recent {
			fmt.Fprintf(&s, "#%03d | Table: %s | INR %s\n", o.ID, tableOrTakeaway(o.Table), utils.FormatAmount(o.Total))
		}
	}
	return s.String(), nil
}

func (b *Bot) sales(ctx context.Context) (string, error) {
	p, err := b.reports.SalesSince(ctx, salesDays)
	if err != nil {
		return "", err
	}
	var s strings.Builder
	fmt.Fprintf(&s, "*Sales Report (%d Days)*\n\n", p.Days)
	s.WriteString("*Today:*\n")
	fmt.Fprintf(&s, "   Orders: %d\n", p.TodayOrders)
	fmt.Fprintf(&s, "   Sales: INR %s\n\n", utils.FormatAmount(p.TodaySales))
	fmt.Fprintf(&s, "*Last %d Days:*\n", p.Days)
	fmt.Fprintf(&s, "   Total Orders: %d\n", p.Orders)
	fmt.Fprintf(&s, "   Total Sales: INR %s\n", utils.FormatAmount(p.Sales))
	return s.String(), nil
}

func (b *Bot) bills(ctx context.Context) (string, error) {
	bills, err := b.reports.TodayBills(ctx, billsLimit)
	if err != nil {
		return "", err
	}
	if len(bills) == 0 {
		return "No bills found for today.", nil
	}
	var s strings.Builder
	fmt.Fprintf(&s, "Bills (%s)\n\n", time.Now().Format("02/01/2006"))
	for _, o := range bills {
		fmt.Fprintf(&s, "Bill #%03d | Table: %s | Rs %s\n", o.ID, tableOrTakeaway(o.Table), utils.FormatAmount(o.Total))
		fmt.Fprintf(&s, "Date: %s\n\n", o.Date.Format(displayTime))
	}
	fmt.Fprintf(&s, "Total Bills: %d", len(bills))
	return s.String(), nil
}

func (b *Bot) bill(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: /bill <number>", nil
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "Invalid bill number. Use: /bill <number>", nil
	}
	d, err := b.reports.Bill(ctx, uint(id))
	if err != nil {
		return "", err
	}
	if d == nil {
		return fmt.Sprintf("Bill #%d not found.", id), nil
	}

	var s strings.Builder
	fmt.Fprintf(&s, "*Bill #%03d*\n\n", d.ID)
	fmt.Fprintf(&s, "Date: %s\n", d.Date.Format(displayTime))
	fmt.Fprintf(&s, "Table: %s\n\n", tableOrTakeaway(d.Table))
	s.WriteString("*Items:*\n")
	for _, item := range d.Items {
		fmt.Fprintf(&s, "• %dx %s\n", item.Quantity, escapeMarkdown(item.Name))
		fmt.Fprintf(&s, "  INR %s\n", utils.FormatAmount(item.Total))
	}
	fmt.Fprintf(&s, "\n*Subtotal:* INR %s\n", utils.FormatAmount(d.Subtotal))
	if d.ServiceCharge > 0 {
		fmt.Fprintf(&s, "*Service Charge:* INR %s\n", utils.FormatAmount(d.ServiceCharge))
	}
	if d.Tax > 0 {
		fmt.Fprintf(&s, "*GST (5%%):* INR %s\n", utils.FormatAmount(d.Tax))
	}
	if d.Discount > 0 {
		fmt.Fprintf(&s, "*Discount:* INR %s\n", utils.FormatAmount(d.Discount))
	}
	fmt.Fprintf(&s, "*TOTAL:* INR %s\n", utils.FormatAmount(d.Total))
	return s.String(), nil
}

func (b *Bot) menu(ctx context.Context) (string, error) {
	m, err := b.reports.MenuSummary(ctx)
	if err != nil {
		return "", err
	}
	var s strings.Builder
	s.WriteString("*Menu Summary*\n\n")
	fmt.Fprintf(&s, "Total Items: %d\n\n", m.Total)
	s.WriteString("*By Category:*\n")
	for _, c := range m.Categories {
		fmt.Fprintf(&s, "• %s: %d items\n", escapeMarkdown(c.Category), c.Count)
	}
	return s.String(), nil
}
