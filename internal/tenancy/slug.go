package tenancy

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 4
	// PostgreSQL truncates identifiers beyond 63 bytes
	maxSchemaLength = 63
)

// SchemaNameFor derives a tenant schema name from a business name:
// lowercase slug, "_", and a random 4-character suffix.
// "Acme Corp" becomes something like acme_corp_x7q2.
func SchemaNameFor(businessName string) (Identifier, error) {
	suffix, err := randomSuffix()
	if err != nil {
		return "", err
	}
	return ValidateSchemaName(Slugify(businessName) + "_" + suffix)
}

// Slugify lowercases name and collapses every run of characters outside
// [a-z0-9] into a single underscore. The result is prefixed with "t_" when it
// is empty, starts with a digit or would land in the reserved pg_ namespace.
func Slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" || (slug[0] >= '0' && slug[0] <= '9') || strings.HasPrefix(slug+"_", "pg_") {
		slug = "t_" + slug
		slug = strings.TrimRight(slug, "_")
	}

	limit := maxSchemaLength - suffixLength - 1
	if len(slug) > limit {
		slug = strings.TrimRight(slug[:limit], "_")
	}
	return slug
}

func randomSuffix() (string, error) {
	max := big.NewInt(int64(len(suffixAlphabet)))
	out := make([]byte, suffixLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate schema suffix: %w", err)
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out), nil
}
