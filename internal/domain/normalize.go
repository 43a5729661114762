package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Number accepts JSON numbers and numeric strings ("12.50").
// NaN and infinities are rejected.
type Number float64

const (
	// MaxMoney is the largest value a NUMERIC(12,2) column holds
	MaxMoney = 9999999999.99
	// MaxQuantity is the largest value an INTEGER column holds
	MaxQuantity = math.MaxInt32
)

func finite(f float64, raw string) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return Number(f), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		v, err := finite(f, s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := finite(f, string(data))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Money rounds to cents
func (n Number) Money() float64 {
	return math.Round(float64(n)*100) / 100
}

// Int reports whether the value is an integer that fits an INTEGER column
func (n Number) Int() (int, bool) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > MaxQuantity || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func validMoney(n Number) bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && n.Money() <= MaxMoney
}

// Date accepts "2006-01-02" or RFC 3339
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t.UTC()
	return nil
}

// Ptr returns nil for the zero date
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func requireString(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewValidationError(field + " is required")
	}
	if len(value) > max {
		return "", NewValidationError(fmt.Sprintf("%s length must be between 1 and %d", field, max))
	}
	return value, nil
}

func optionalString(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > max {
		return "", NewValidationError(fmt.Sprintf("%s length must be at most %d", field, max))
	}
	return value, nil
}

func requireEmail(value string) (string, error) {
	email := normalizeEmail(value)
	if email == "" {
		return "", NewValidationError("email is required")
	}
	if !govalidator.IsEmail(email) {
		return "", NewValidationError("invalid email format")
	}
	return email, nil
}

func requireUUID(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewValidationError(field + " is required")
	}
	if !govalidator.IsUUID(value) {
		return "", NewValidationError(field + " must be a valid UUID")
	}
	return value, nil
}

func nonNegativeMoney(n Number, field string) (float64, error) {
	if !validMoney(n) {
		return 0, NewValidationError(fmt.Sprintf("%s must be a number no greater than %.2f", field, MaxMoney))
	}
	if n < 0 {
		return 0, NewValidationError(field + " must not be negative")
	}
	return n.Money(), nil
}

func positiveMoney(n Number, field string) (float64, error) {
	if !validMoney(n) {
		return 0, NewValidationError(fmt.Sprintf("%s must be a number no greater than %.2f", field, MaxMoney))
	}
	if n.Money() <= 0 {
		return 0, NewValidationError(field + " must be greater than zero")
	}
	return n.Money(), nil
}

func nonNegativeInt(n Number, field string) (int, error) {
	v, ok := n.Int()
	if !ok || v < 0 {
		return 0, NewValidationError(field + " must be a non-negative integer")
	}
	return v, nil
}

func oneOf(value, field string, allowed ...string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if !govalidator.IsIn(value, allowed...) {
		return "", NewValidationError(fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
	}
	return value, nil
}

// GetByIDRequest is shared by every <entity>.get and <entity>.delete endpoint
type GetByIDRequest struct {
	ID string `json:"id"`
}

func (r *GetByIDRequest) Validate() error {
	id, err := requireUUID(r.ID, "id")
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}
