package tenancy

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "acme_corp_x7q2", true},
		{"leading underscore", "_tenant", true},
		{"upper case", "AcmeCorp", true},
		{"single letter", "a", true},
		{"empty", "", false},
		{"leading digit", "1acme", false},
		{"double quote", `acme"; DROP SCHEMA public; --`, false},
		{"single quote", "acme'", false},
		{"semicolon", "acme;", false},
		{"space", "acme corp", false},
		{"dot", "public.users", false},
		{"dash", "acme-corp", false},
		{"line comment", "acme--", false},
		{"block comment", "acme/*x*/", false},
		{"newline", "acme\n", false},
		{"unicode letter", "acmé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidateIdentifier(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.input, id.String())
				return
			}
			var invalid *InvalidIdentifierError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.input, invalid.Value)
			assert.Empty(t, id)
		})
	}
}

func TestValidateIdentifierRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const head = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	const tail = head + "0123456789"
	poison := []string{`"`, "'", ";", " ", "--", "/*", "\t"}

	for i := 0; i < 500; i++ {
		var b strings.Builder
		b.WriteByte(head[rng.Intn(len(head))])
		for j := rng.Intn(40); j > 0; j-- {
			b.WriteByte(tail[rng.Intn(len(tail))])
		}
		good := b.String()

		_, err := ValidateIdentifier(good)
		assert.NoError(t, err, good)

		at := rng.Intn(len(good) + 1)
		bad := good[:at] + poison[rng.Intn(len(poison))] + good[at:]
		_, err = ValidateIdentifier(bad)
		assert.Error(t, err, bad)
	}
}

func TestIdentifierQuoted(t *testing.T) {
	assert.Equal(t, `"acme_corp_x7q2"`, Identifier("acme_corp_x7q2").Quoted())
}

func TestValidateSchemaName(t *testing.T) {
	for _, reserved := range []string{"public", "PUBLIC", "information_schema", "pg_catalog", "pg_toast"} {
		_, err := ValidateSchemaName(reserved)
		var invalid *InvalidIdentifierError
		require.True(t, errors.As(err, &invalid), reserved)
		assert.Equal(t, "reserved schema", invalid.Reason)
	}

	id, err := ValidateSchemaName("acme_corp_x7q2")
	require.NoError(t, err)
	assert.Equal(t, Identifier("acme_corp_x7q2"), id)

	_, err = ValidateSchemaName("acme;")
	assert.Error(t, err)

	longest := strings.Repeat("a", maxSchemaLength)
	_, err = ValidateSchemaName(longest)
	assert.NoError(t, err)

	_, err = ValidateSchemaName(longest + "b")
	var invalid *InvalidIdentifierError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "63")
}

func TestValidateSortColumn(t *testing.T) {
	allowed := []string{"name", "created_at"}

	id, err := ValidateSortColumn("", allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, Identifier("created_at"), id)

	id, err = ValidateSortColumn("name", allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, Identifier("name"), id)

	_, err = ValidateSortColumn("salary", allowed, "created_at")
	var invalid *InvalidIdentifierError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "unsupported sort column", invalid.Reason)

	_, err = ValidateSortColumn("name; DROP TABLE jobs", allowed, "created_at")
	assert.Error(t, err)
}

func TestInvalidIdentifierErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid identifier: identifier is required", (&InvalidIdentifierError{Reason: "identifier is required"}).Error())
	assert.Equal(t, `invalid identifier "a b": bad`, (&InvalidIdentifierError{Value: "a b", Reason: "bad"}).Error())
}
