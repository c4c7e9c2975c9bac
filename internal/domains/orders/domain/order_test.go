package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" shipping ")
	require.NoError(t, err)
	require.Equal(t, StatusShipping, s)
	require.Equal(t, "배송중", s.DisplayName())

	_, err = ParseStatus("LOST")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPayloadValidate(t *testing.T) {
	p := Payload{}
	require.ErrorIs(t, p.Validate(), ErrMemberRequired)
	p.MemberID = 1
	require.ErrorIs(t, p.Validate(), ErrLinesRequired)
	p.Items = []LineInput{{VariantID: 0, Quantity: 1}}
	require.ErrorIs(t, p.Validate(), ErrVariantUnresolved)
	p.Items[0].VariantID = 4
	p.Items[0].Quantity = 0
	require.ErrorIs(t, p.Validate(), ErrInvalidQuantity)
	p.Items[0].Quantity = 2
	require.NoError(t, p.Validate())
}
