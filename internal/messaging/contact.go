package messaging

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// MinContactDigits is the shortest number accepted from an administrator
const MinContactDigits = 8

var ErrInvalidContact = errors.New("contact number must have at least 8 digits")

// contactKeys lists where a contact file may keep the number, in priority order
var contactKeys = []string{"whatsapp", "wa", "number", "tel"}

// NormalizeNumber strips everything but digits
func NormalizeNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ValidateNumber normalizes s and rejects numbers that are too short
func ValidateNumber(s string) (string, error) {
	n := NormalizeNumber(s)
	if len(n) < MinContactDigits {
		return "", ErrInvalidContact
	}
	return n, nil
}

// ExtractContactNumber reads the number from a decoded contact document. The
// document is an object, or an array whose first element is that object.
func ExtractContactNumber(doc any) string {
	if arr, ok := doc.([]any); ok {
		if len(arr) == 0 {
			return ""
		}
		doc = arr[0]
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	// The first key holding a non-null value decides, even when it is blank.
	for _, key := range contactKeys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		return NormalizeNumber(strings.TrimSpace(toString(v)))
	}
	return ""
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case interface{ String() string }:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// Contact holds the current contact number shared by request handlers
type Contact struct {
	mu     sync.RWMutex
	number string
}

func NewContact(number string) *Contact {
	return &Contact{number: NormalizeNumber(number)}
}

func (c *Contact) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.number
}

func (c *Contact) Set(number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.number = NormalizeNumber(number)
}
