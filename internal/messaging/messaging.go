package messaging

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	whatsAppBase = "https://wa.me/"
	mapsBase     = "https://maps.google.com/?q="

	// DefaultMessage текст по умолчанию для кнопки WhatsApp
	DefaultMessage = "Hi! I'm interested in your fresh meat products. Could you help me with my order?"
)

// QuickQuestions готовые вопросы виджета связи
var QuickQuestions = []string{
	"What's the delivery time?",
	"Is boneless mutton available?",
	"How do I place a bulk order?",
	"What are your payment options?",
	"Do you deliver to my area?",
}

// Digits оставляет в номере только цифры
func Digits(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}

// WhatsAppURL ссылка wa.me с готовым текстом сообщения
func WhatsAppURL(number, text string) string {
	return whatsAppBase + Digits(number) + "?text=" + EncodeComponent(text)
}

// TelURI ссылка для звонка
func TelURI(number string) string {
	return "tel:" + strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, number)
}

// MapsURL ссылка на адрес в Google Maps
func MapsURL(address string) string {
	return mapsBase + EncodeComponent(address)
}

// InquiryMessage сообщение быстрого запроса из формы обратной связи
func InquiryMessage(name, phone, message string) string {
	return fmt.Sprintf("🛒 Quick Inquiry from Website\n\n👤 Name: %s\n📞 Phone: %s\n💬 Message: %s",
		strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(message))
}

// EncodeComponent кодирует строку как encodeURIComponent в браузере:
// пробел становится %20, символы -_.!~*'() не кодируются
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}

	return strings.IndexByte("-_.!~*'()", c) >= 0
}
