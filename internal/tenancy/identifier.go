package tenancy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identifier is a string that passed ValidateIdentifier and may be
// interpolated into SQL after quoting
type Identifier string

// String returns the raw identifier
func (i Identifier) String() string {
	return string(i)
}

// Quoted returns the identifier in double quotes, ready for DDL or SET
func (i Identifier) Quoted() string {
	return pq.QuoteIdentifier(string(i))
}

// InvalidIdentifierError is returned for schema names or sort columns that
// cannot be used in SQL. It never reaches the database.
type InvalidIdentifierError struct {
	Value  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid identifier: %s", e.Reason)
	}
	return fmt.Sprintf("invalid identifier %q: %s", e.Value, e.Reason)
}

// ValidateIdentifier accepts only ^[A-Za-z_][A-Za-z0-9_]*$.
// Every schema name or column interpolated into SQL goes through here.
func ValidateIdentifier(name string) (Identifier, error) {
	if name == "" {
		return "", &InvalidIdentifierError{Reason: "identifier is required"}
	}
	if !identifierPattern.MatchString(name) {
		return "", &InvalidIdentifierError{Value: name, Reason: "must match ^[A-Za-z_][A-Za-z0-9_]*$"}
	}
	return Identifier(name), nil
}

// IsReservedSchema reports whether name is a system schema tenants must never bind to
func IsReservedSchema(name string) bool {
	lower := strings.ToLower(name)
	return lower == "public" || lower == "information_schema" || strings.HasPrefix(lower, "pg_")
}

// ValidateSchemaName validates name and rejects system schemas and names
// PostgreSQL would truncate
func ValidateSchemaName(name string) (Identifier, error) {
	id, err := ValidateIdentifier(name)
	if err != nil {
		return "", err
	}
	if len(name) > maxSchemaLength {
		return "", &InvalidIdentifierError{Value: name, Reason: fmt.Sprintf("longer than %d bytes", maxSchemaLength)}
	}
	if IsReservedSchema(name) {
		return "", &InvalidIdentifierError{Value: name, Reason: "reserved schema"}
	}
	return id, nil
}

// ValidateSortColumn validates column and checks it against allowed.
// An empty column returns fallback.
func ValidateSortColumn(column string, allowed []string, fallback string) (Identifier, error) {
	if column == "" {
		return Identifier(fallback), nil
	}
	id, err := ValidateIdentifier(column)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if a == column {
			return id, nil
		}
	}
	return "", &InvalidIdentifierError{Value: column, Reason: "unsupported sort column"}
}
