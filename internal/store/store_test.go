package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/toolkit"
)

func p(nt string, syms ...string) grammar.Production {
	if len(syms) == 1 && syms[0] == grammar.Epsilon {
		return grammar.Production{NonTerminal: nt}
	}
	return grammar.Production{NonTerminal: nt, Symbols: syms}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_Record_thenGetByID(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	g, err := grammar.NewGrammar([]grammar.Production{p("S", "a")})
	assert.NoError(err)
	tk := toolkit.Build(g)

	s := openTestStore(t)
	run, err := s.Record(ctx, tk)
	assert.NoError(err)
	assert.Equal(tk.RunID, run.ID)

	got, err := s.GetByID(ctx, tk.RunID)
	assert.NoError(err)
	assert.Equal(run.Fingerprint, got.Fingerprint)
	assert.Equal("S", got.StartSymbol)
}

func Test_GetByID_missing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_ListRecent_returnsEveryRecordedRun(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	g, err := grammar.NewGrammar([]grammar.Production{p("S", "a")})
	assert.NoError(err)

	want := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		tk := toolkit.Build(g)
		_, err := s.Record(ctx, tk)
		assert.NoError(err)
		want[tk.RunID] = true
	}

	runs, err := s.ListRecent(ctx, 10)
	assert.NoError(err)
	assert.Len(runs, 3)
	for _, r := range runs {
		assert.True(want[r.ID])
	}
}
