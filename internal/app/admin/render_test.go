package admin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

func TestWon(t *testing.T) {
	require.Equal(t, "0", won(0))
	require.Equal(t, "950", won(950))
	require.Equal(t, "18,000", won(18000))
	require.Equal(t, "1,234,567", won(1234567))
	require.Equal(t, "-45,000", won(-45000))
}

func TestFooter_BracketsCurrentPage(t *testing.T) {
	var b bytes.Buffer
	footer(&b, 2, 4, []int{1, 2, 3})
	require.Contains(t, b.String(), "page 2/4")
	require.Contains(t, b.String(), "1 [2] 3")
}

func TestWriteYAML_UsesAPIFieldNames(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, writeYAML(&b, map[string]any{"productName": "Kenya AA", "phone": "010"}))
	require.Contains(t, b.String(), "productName: Kenya AA")
	require.Contains(t, b.String(), `phone: "010"`)
	require.NotContains(t, b.String(), "{")
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	var c resource.Confirmer = promptConfirmer(strings.NewReader("yes\n"), &out)
	require.True(t, c.Confirm("Delete?"))
	require.Contains(t, out.String(), "Delete? [y/N]")

	require.False(t, promptConfirmer(strings.NewReader("\n"), &out).Confirm("Delete?"))
	require.False(t, promptConfirmer(strings.NewReader(""), &out).Confirm("Delete?"))
}

func TestParseOption(t *testing.T) {
	o, err := parseOption("500g:20000:5")
	require.NoError(t, err)
	require.Equal(t, "500g", o.OptionValue)
	require.Equal(t, 20000, o.ExtraPrice)
	require.Equal(t, 5, o.Stock)

	o, err = parseOption("1kg")
	require.NoError(t, err)
	require.Zero(t, o.ExtraPrice)

	_, err = parseOption("1kg:x")
	require.Error(t, err)
	_, err = parseOption("1:2:3:4")
	require.Error(t, err)
}
