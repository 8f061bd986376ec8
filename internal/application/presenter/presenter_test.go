package presenter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocklist/internal/application/notify"
	"github.com/jhoicas/stocklist/internal/application/presenter"
	"github.com/jhoicas/stocklist/internal/application/stock"
	"github.com/jhoicas/stocklist/internal/infrastructure/memstore"
)

// countingBlobs cuenta las escrituras para verificar que no hubo llamada al Store.
type countingBlobs struct {
	*memstore.Store
	puts int
}

func (c *countingBlobs) Put(ctx context.Context, key string, blob []byte) error {
	c.puts++
	return c.Store.Put(ctx, key, blob)
}

type fixture struct {
	p      *presenter.Presenter
	store  *stock.Store
	banner *notify.Banner
	blobs  *countingBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	blobs := &countingBlobs{Store: memstore.New()}
	s := stock.NewStore(blobs, "stockItems", nil)
	require.NoError(t, s.Load(context.Background()))
	banner := notify.NewBanner(time.Minute)
	return &fixture{p: presenter.New(s, banner, nil), store: s, banner: banner, blobs: blobs}
}

func (f *fixture) notification(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := f.banner.Current()
	require.True(t, ok, "se esperaba un aviso visible")
	return n
}

func TestSubmitAddForm_Success(t *testing.T) {
	f := newFixture(t)

	ok := f.p.SubmitAddForm(context.Background(), "  Widget ", "10", "2.5")
	require.True(t, ok)

	n := f.notification(t)
	assert.Equal(t, notify.KindSuccess, n.Kind)
	assert.Equal(t, presenter.MsgAdded, n.Text)

	page := f.p.Page()
	assert.Equal(t, presenter.Form{}, page.Form, "el formulario se limpia")
	require.Len(t, page.Table.Rows, 1)
	row := page.Table.Rows[0]
	assert.Equal(t, 1, row.ID)
	assert.Equal(t, "Widget", row.Name)
	assert.Equal(t, 10, row.Quantity)
	assert.Equal(t, "2.50", row.Price)
	assert.Equal(t, "10", row.QuantityInput)
	assert.Equal(t, "2.50", row.PriceInput)
	assert.Contains(t, row.DeletePrompt, "Widget")
}

func TestSubmitAddForm_InvalidInputDoesNotCallStore(t *testing.T) {
	cases := map[string][3]string{
		"nombre vacío":       {"  ", "1", "1"},
		"cantidad vacía":     {"A", "", "1"},
		"cantidad negativa":  {"A", "-1", "1"},
		"cantidad decimal":   {"A", "1.5", "1"},
		"precio no numérico": {"A", "1", "abc"},
		"precio negativo":    {"A", "1", "-2"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ok := f.p.SubmitAddForm(context.Background(), in[0], in[1], in[2])
			assert.False(t, ok)
			assert.Equal(t, 0, f.blobs.puts)
			assert.Empty(t, f.store.List())

			n := f.notification(t)
			assert.Equal(t, notify.KindError, n.Kind)
			assert.Equal(t, presenter.MsgInvalidForm, n.Text)
			assert.Equal(t, presenter.Form{Name: in[0], Quantity: in[1], Price: in[2]}, f.p.Page().Form,
				"el formulario conserva lo escrito")
		})
	}
}

func TestSubmitAddForm_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.p.SubmitAddForm(ctx, "Widget", "1", "1"))

	assert.False(t, f.p.SubmitAddForm(ctx, "widget", "2", "2"))
	assert.Equal(t, presenter.MsgDuplicateName, f.notification(t).Text)
	assert.Len(t, f.store.List(), 1)
}

func TestSubmitAddForm_AcceptsCommaDecimal(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.p.SubmitAddForm(context.Background(), "Pan", "3", "1,25"))
	assert.Equal(t, "1.25", f.p.Page().Table.Rows[0].Price)
}

func TestSubmitAddForm_PersistenceFailure(t *testing.T) {
	f := newFixture(t)
	f.blobs.Store.PutErr = errors.New("disco lleno")

	assert.False(t, f.p.SubmitAddForm(context.Background(), "Widget", "1", "1"))
	n := f.notification(t)
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, presenter.MsgNotSaved, n.Text)
	assert.Len(t, f.p.Page().Table.Rows, 1, "la tabla refleja la memoria")
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.p.SubmitAddForm(ctx, "Widget", "5", "2.50"))
	puts := f.blobs.puts

	assert.False(t, f.p.UpdateQuantity(ctx, 1, "x"))
	assert.Equal(t, presenter.MsgInvalidQuantity, f.notification(t).Text)
	assert.False(t, f.p.UpdateQuantity(ctx, 1, "-3"))
	assert.Equal(t, puts, f.blobs.puts)

	require.True(t, f.p.UpdateQuantity(ctx, 1, "9"))
	assert.Equal(t, presenter.MsgUpdated, f.notification(t).Text)
	row := f.p.Page().Table.Rows[0]
	assert.Equal(t, 9, row.Quantity)
	assert.Equal(t, "2.50", row.Price)
}

func TestUpdatePrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.p.SubmitAddForm(ctx, "Widget", "5", "2.50"))

	assert.False(t, f.p.UpdatePrice(ctx, 1, ""))
	assert.Equal(t, presenter.MsgInvalidPrice, f.notification(t).Text)

	require.True(t, f.p.UpdatePrice(ctx, 1, "3"))
	row := f.p.Page().Table.Rows[0]
	assert.Equal(t, "3.00", row.Price)
	assert.Equal(t, 5, row.Quantity)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.p.UpdateQuantity(context.Background(), 99, "9"))
	n := f.notification(t)
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, presenter.MsgUpdateNotFound, n.Text)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.p.SubmitAddForm(ctx, "Widget", "5", "2.50"))
	puts := f.blobs.puts

	var asked string
	declined := presenter.ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	})
	assert.False(t, f.p.Delete(ctx, 1, declined))
	assert.Equal(t, presenter.DeletePrompt("Widget"), asked)
	assert.Equal(t, puts, f.blobs.puts)
	assert.Len(t, f.store.List(), 1)

	accepted := presenter.ConfirmFunc(func(string) bool { return true })
	require.True(t, f.p.Delete(ctx, 1, accepted))
	assert.Equal(t, presenter.MsgDeleted, f.notification(t).Text)
	assert.Empty(t, f.p.Page().Table.Rows)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	accepted := presenter.ConfirmFunc(func(string) bool { return true })
	assert.False(t, f.p.Delete(context.Background(), 7, accepted))
	assert.Equal(t, presenter.MsgDeleteNotFound, f.notification(t).Text)
}

func TestRender_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.p.SubmitAddForm(ctx, "Widget", "5", "2.50"))
	require.True(t, f.p.SubmitAddForm(ctx, "Tuerca", "100", "0.1"))

	first := f.p.Render()
	second := f.p.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, first, f.p.Page().Table)
}

func TestUpdatePrice_InvalidInputDoesNotCallStore(t *testing.T) {
	for _, raw := range []string{"-1", "abc", "", "  ", "1..2"} {
		t.Run(raw, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			require.True(t, f.p.SubmitAddForm(ctx, "Widget", "5", "2.50"))
			puts := f.blobs.puts

			assert.False(t, f.p.UpdatePrice(ctx, 1, raw))
			assert.Equal(t, puts, f.blobs.puts)
			n := f.notification(t)
			assert.Equal(t, notify.KindError, n.Kind)
			assert.Equal(t, presenter.MsgInvalidPrice, n.Text)
			assert.Equal(t, "2.50", f.p.Page().Table.Rows[0].Price)
		})
	}
}

func TestMutations_PersistenceFailure(t *testing.T) {
	accepted := presenter.ConfirmFunc(func(string) bool { return true })
	cases := []struct {
		name   string
		mutate func(*fixture) bool
		check  func(*testing.T, presenter.Table)
	}{
		{
			name:   "cantidad",
			mutate: func(f *fixture) bool { return f.p.UpdateQuantity(context.Background(), 1, "9") },
			check:  func(t *testing.T, tb presenter.Table) { assert.Equal(t, 9, tb.Rows[0].Quantity) },
		},
		{
			name:   "precio",
			mutate: func(f *fixture) bool { return f.p.UpdatePrice(context.Background(), 1, "4") },
			check:  func(t *testing.T, tb presenter.Table) { assert.Equal(t, "4.00", tb.Rows[0].Price) },
		},
		{
			name:   "borrado",
			mutate: func(f *fixture) bool { return f.p.Delete(context.Background(), 1, accepted) },
			check:  func(t *testing.T, tb presenter.Table) { assert.Empty(t, tb.Rows) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			require.True(t, f.p.SubmitAddForm(context.Background(), "Widget", "5", "2.50"))
			f.blobs.Store.PutErr = errors.New("disco lleno")

			assert.False(t, tc.mutate(f))
			n := f.notification(t)
			assert.Equal(t, notify.KindError, n.Kind)
			assert.Equal(t, presenter.MsgNotSaved, n.Text)
			tc.check(t, f.p.Page().Table)
		})
	}
}
