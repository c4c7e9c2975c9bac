package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextWeight(t *testing.T) {
	require.Equal(t, "200g", NextWeight(nil))
	require.Equal(t, "500g", NextWeight([]string{"200g", "300g"}))
	require.Equal(t, "1kg", NextWeight([]string{"200g", "300g", "500g"}))
	require.Equal(t, FallbackWeight, NextWeight([]string{"1kg", "500g", "300g", "200g"}))
}

func TestCheckOrigin(t *testing.T) {
	require.NoError(t, CheckOrigin("", ""))
	require.NoError(t, CheckOrigin("Africa", ""))
	require.NoError(t, CheckOrigin("Africa", "Kenya"))
	require.ErrorIs(t, CheckOrigin("Asia", "Kenya"), ErrNationalityMismatch)
	require.ErrorIs(t, CheckOrigin("", "Kenya"), ErrNationalityMismatch)
	require.ErrorIs(t, CheckOrigin("Antarctica", ""), ErrUnknownContinent)
}

func TestResolveImageURL(t *testing.T) {
	const origin = "http://localhost:8080"
	require.Equal(t, "", ResolveImageURL(origin, ""))
	require.Equal(t, "https://cdn.example.com/a.jpg", ResolveImageURL(origin, "https://cdn.example.com/a.jpg"))
	require.Equal(t, "http://localhost:8080/uploads/products/1/a.jpg", ResolveImageURL(origin, "products/1/a.jpg"))
	require.Equal(t, "http://localhost:8080/uploads/a.jpg", ResolveImageURL(origin+"/", "/a.jpg"))
}

func TestPayloadValidate_Order(t *testing.T) {
	p := Payload{Options: []OptionInput{DefaultOption()}}
	require.ErrorIs(t, p.Validate(), ErrNameRequired)

	p.ProductName = "Yirgacheffe"
	require.ErrorIs(t, p.Validate(), ErrPriceRequired)

	p.BasePrice = 18000
	require.NoError(t, p.Validate())

	p.Options = nil
	require.ErrorIs(t, p.Validate(), ErrTooFewOptions)

	p.Options = []OptionInput{{OptionValue: "200g", Stock: -1}}
	require.ErrorIs(t, p.Validate(), ErrNegativeOption)
}
