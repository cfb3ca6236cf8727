// Package messaging builds the outbound contact and share links of the
// storefront.
package messaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

var ErrUnknownPlatform = errors.New("unknown share platform")

// Share platforms
const (
	PlatformWhatsApp = "whatsapp"
	PlatformTelegram = "telegram"
	PlatformEmail    = "email"
)

// DefaultCampaign is used for unknown or empty campaign names
const DefaultCampaign = "geral"

var campaignEmojis = map[string][2]string{
	"geral":          {"\U0001F6D2", "✨"},
	"presentes":      {"\U0001F381", "\U0001F49D"},
	"amor":           {"\U0001F496", "❤"},
	"infantil":       {"\U0001F3AA", "\U0001F9F8"},
	"festa":          {"\U0001F389", "\U0001F973"},
	"cuidados":       {"\U0001F6C0", "\U0001F9FC"},
	"personalizados": {"\U0001F58C", "\U0001FA84"},
	"doces":          {"\U0001F36F", "\U0001F9C1"},
	"convites":       {"\U0001F4E9", "\U0001F4DD"},
}

// Campaign returns the known campaign name for c, or DefaultCampaign
func Campaign(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if _, ok := campaignEmojis[c]; ok {
		return c
	}
	return DefaultCampaign
}

// ShareTitle is the catalog share headline for a campaign
func ShareTitle(campaign string) string {
	e := campaignEmojis[Campaign(campaign)]
	return fmt.Sprintf("Confira o catálogo Lima Calixto! %s %s", e[0], e[1])
}

// ShareLink builds the catalog share link for a platform
func ShareLink(platform, campaign, pageURL string) (string, error) {
	title := ShareTitle(campaign)
	message := title + "\n" + pageURL

	switch strings.ToLower(strings.TrimSpace(platform)) {
	case PlatformWhatsApp:
		return "https://wa.me/?text=" + catalog.EscapeComponent(message), nil
	case PlatformTelegram:
		return TelegramLink(pageURL, title), nil
	case PlatformEmail:
		return EmailLink(title, message), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
}

// InquiryMessage is the WhatsApp text asking about one product
func InquiryMessage(p models.Product) string {
	codePart := ""
	if p.Code != "" {
		codePart = fmt.Sprintf(" (Código: %s)", p.Code)
	}
	return fmt.Sprintf("Olá! Tenho interesse no produto \"%s\"%s. Pode me enviar informações e orçamento?", p.Name, codePart)
}

// InquiryLink returns the wa.me link for a product, "" when no contact
// number is configured
func InquiryLink(number string, p models.Product) string {
	if number == "" {
		return ""
	}
	return "https://wa.me/" + catalog.EscapeComponent(number) + "?text=" + catalog.EscapeComponent(InquiryMessage(p))
}

// QuoteMessage asks for a quote quoting the product description and price
func QuoteMessage(p models.Product) string {
	price := decimal.NewFromFloat(p.Price).StringFixed(2)
	return fmt.Sprintf("Olá! Tenho interesse no produto \"%s\" (%s) por R$ %s.", p.Name, p.Description, price)
}

// QuoteLink returns the wa.me quote link, "" when no contact number is configured
func QuoteLink(number string, p models.Product) string {
	if number == "" {
		return ""
	}
	return "https://wa.me/" + catalog.EscapeComponent(number) + "?text=" + catalog.EscapeComponent(QuoteMessage(p))
}

// TelegramLink shares pageURL with text on Telegram
func TelegramLink(pageURL, text string) string {
	return "https://t.me/share/url?url=" + catalog.EscapeComponent(pageURL) + "&text=" + catalog.EscapeComponent(text)
}

// EmailLink opens a mail draft
func EmailLink(subject, body string) string {
	return "mailto:?subject=" + catalog.EscapeComponent(subject) + "&body=" + catalog.EscapeComponent(body)
}

// ProductLinks collects every outbound link for one product page
func ProductLinks(number string, p models.Product, pageURL string) models.ProductLinks {
	return models.ProductLinks{
		WhatsApp: InquiryLink(number, p),
		Quote:    QuoteLink(number, p),
		Telegram: TelegramLink(pageURL, InquiryMessage(p)),
		Email:    EmailLink(p.Name, QuoteMessage(p)+"\n"+pageURL),
	}
}

// FormatPrice renders a price the Brazilian way, e.g. "R$ 1.234,50"
func FormatPrice(price float64) string {
	fixed := decimal.NewFromFloat(price).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
