package utils

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, s := range []string{"", "-1", "abc", "1.5"} {
		_, err := ParseID(s)
		assert.Error(t, err, s)
	}
}

func TestParseUUID(t *testing.T) {
	want := uuid.New()

	got, err := ParseUUID(strings.ToUpper(want.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}

func TestP(t *testing.T) {
	p := P(3)
	*p = 4
	assert.Equal(t, 4, *P(*p))
}
