package drafts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string   `yaml:"name"`
	Price   int      `yaml:"price"`
	Options []string `yaml:"options"`
}

func TestStore_SaveLoadDiscard(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "drafts"))

	var got sample
	ok, err := s.Load(ctx, "product", &got)
	require.NoError(t, err)
	require.False(t, ok)

	want := sample{Name: "Huila", Price: 15000, Options: []string{"200g", "500g"}}
	path, err := s.Save(ctx, "product", want)
	require.NoError(t, err)
	require.Equal(t, s.Path("product"), path)

	ok, err = s.Load(ctx, "product", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	require.NoError(t, s.Discard(ctx, "product"))
	require.NoError(t, s.Discard(ctx, "product"))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestReadFile_AcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Kona","price":40000,"options":["1kg"]}`), 0o644))
	var got sample
	require.NoError(t, ReadFile(path, &got))
	require.Equal(t, sample{Name: "Kona", Price: 40000, Options: []string{"1kg"}}, got)
}
