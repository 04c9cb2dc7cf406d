package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	repository.StockRepository
	rows map[string]decimal.Decimal
}

func stockKey(articleID, warehouseID string) string { return articleID + "|" + warehouseID }

func (f *fakeStockRepo) Get(articleID, warehouseID string) (*entity.Stock, error) {
	qty, ok := f.rows[stockKey(articleID, warehouseID)]
	if !ok {
		qty = decimal.Zero
	}
	return &entity.Stock{ArticleID: articleID, WarehouseID: warehouseID, Quantity: qty}, nil
}

func (f *fakeStockRepo) GetForUpdate(articleID, warehouseID string) (*entity.Stock, error) {
	return f.Get(articleID, warehouseID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	f.rows[stockKey(stock.ArticleID, stock.WarehouseID)] = stock.Quantity
	return nil
}

type fakeCountRepo struct {
	repository.InventoryCountRepository
	counts map[string]*entity.InventoryCount
	lines  map[string]*entity.CountLine // key: countID|articleID
}

func lineKey(countID, articleID string) string { return countID + "|" + articleID }

func (f *fakeCountRepo) CreateCount(c *entity.InventoryCount) error {
	clone := *c
	f.counts[c.ID] = &clone
	return nil
}

func (f *fakeCountRepo) GetCountByID(id string) (*entity.InventoryCount, error) {
	c, ok := f.counts[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCountRepo) GetCountForUpdate(id string) (*entity.InventoryCount, error) {
	return f.GetCountByID(id)
}

func (f *fakeCountRepo) UpdateCount(c *entity.InventoryCount) error {
	clone := *c
	f.counts[c.ID] = &clone
	return nil
}

func (f *fakeCountRepo) UpsertLine(line *entity.CountLine) error {
	clone := *line
	f.lines[lineKey(line.CountID, line.ArticleID)] = &clone
	return nil
}

func (f *fakeCountRepo) UpdateLine(line *entity.CountLine) error {
	clone := *line
	f.lines[lineKey(line.CountID, line.ArticleID)] = &clone
	return nil
}

func (f *fakeCountRepo) ListLines(countID string) ([]*entity.CountLine, error) {
	var out []*entity.CountLine
	for _, l := range f.lines {
		if l.CountID == countID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeArticleRepo struct {
	repository.ArticleRepository
	ids map[string]bool
}

func (f *fakeArticleRepo) GetByID(id string) (*entity.Article, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &entity.Article{ID: id, IsActive: true}, nil
}

type fakeWarehouseRepo struct {
	repository.WarehouseRepository
	ids map[string]bool
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, IsActive: true}, nil
}

type fakeTxRunner struct {
	countRepo *fakeCountRepo
	stockRepo *fakeStockRepo
}

func (f *fakeTxRunner) RunCount(ctx context.Context, fn func(
	countRepo repository.InventoryCountRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(f.countRepo, f.stockRepo)
}

type fixture struct {
	uc        *inventory.UseCase
	countRepo *fakeCountRepo
	stockRepo *fakeStockRepo
}

func newFixture() *fixture {
	countRepo := &fakeCountRepo{
		counts: make(map[string]*entity.InventoryCount),
		lines:  make(map[string]*entity.CountLine),
	}
	stockRepo := &fakeStockRepo{rows: make(map[string]decimal.Decimal)}
	uc := inventory.NewUseCase(
		&fakeTxRunner{countRepo: countRepo, stockRepo: stockRepo},
		countRepo,
		stockRepo,
		&fakeArticleRepo{ids: map[string]bool{"art-1": true, "art-2": true}},
		&fakeWarehouseRepo{ids: map[string]bool{"wh-1": true}},
	)
	return &fixture{uc: uc, countRepo: countRepo, stockRepo: stockRepo}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Conteo en progreso
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAbreConteoEnProgreso(t *testing.T) {
	fx := newFixture()

	c, err := fx.uc.Create("wh-1", "resp", "conteo mensual")

	require.NoError(t, err)
	assert.Equal(t, entity.CountStatusInProgress, c.Status)
	assert.Equal(t, "resp", c.ResponsibleID)
}

func TestAddLineSinEfectoEnLedger(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("40")
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)

	line, err := fx.uc.AddLine(c.ID, "art-1", qty("45"))

	require.NoError(t, err)
	assert.True(t, line.CountedQuantity.Equal(qty("45")))
	assert.True(t, line.RecordedQuantity.Equal(qty("40")))
	assert.True(t, line.Variance.Equal(qty("5")))
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("40")), "registrar una línea no muta el ledger")
}

func TestAddLineReemplazaConteoAnterior(t *testing.T) {
	fx := newFixture()
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)

	_, err = fx.uc.AddLine(c.ID, "art-1", qty("10"))
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-1", qty("12"))
	require.NoError(t, err)

	lines, err := fx.countRepo.ListLines(c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].CountedQuantity.Equal(qty("12")))
}

func TestAddLineAdmiteCeroPeroNoNegativo(t *testing.T) {
	fx := newFixture()
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)

	_, err = fx.uc.AddLine(c.ID, "art-1", qty("0"))
	assert.NoError(t, err, "cero contado es legítimo (faltante total)")

	_, err = fx.uc.AddLine(c.ID, "art-1", qty("-1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestAddLineSobreConteoCerradoFalla(t *testing.T) {
	fx := newFixture()
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	require.NoError(t, err)

	_, err = fx.uc.AddLine(c.ID, "art-1", qty("5"))
	assert.True(t, errors.Is(err, domain.ErrAlreadyDecided))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateSobrescribeYCongelaVarianza(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("40")
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-1", qty("45"))
	require.NoError(t, err)

	out, err := fx.uc.Validate(context.Background(), c.ID, "boss")

	require.NoError(t, err)
	assert.Equal(t, entity.CountStatusValidated, out.Status)
	assert.Equal(t, "boss", out.ValidatorID)
	require.NotNil(t, out.ValidatedAt)
	// Escritura directa: la cantidad pasa a ser la contada, no un delta.
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("45")))

	lines, err := fx.countRepo.ListLines(c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].RecordedQuantity.Equal(qty("40")))
	assert.True(t, lines[0].Variance.Equal(qty("5")))
}

func TestValidateRetomaLaFotoBajoBloqueo(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("40")
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-1", qty("45"))
	require.NoError(t, err)

	// El ledger cambia entre la línea y la validación: la varianza congelada
	// se calcula contra la cantidad vigente al validar, no contra la foto
	// provisional.
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("42")

	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	require.NoError(t, err)

	lines, err := fx.countRepo.ListLines(c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].RecordedQuantity.Equal(qty("42")))
	assert.True(t, lines[0].Variance.Equal(qty("3")))
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("45")))
}

func TestValidateVariasLineas(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("40")
	fx.stockRepo.rows[stockKey("art-2", "wh-1")] = qty("7")
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-1", qty("38"))
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-2", qty("9"))
	require.NoError(t, err)

	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	require.NoError(t, err)

	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("38")))
	assert.True(t, fx.stockRepo.rows[stockKey("art-2", "wh-1")].Equal(qty("9")))
}

func TestValidateDosVecesFalla(t *testing.T) {
	fx := newFixture()
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	require.NoError(t, err)

	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	assert.True(t, errors.Is(err, domain.ErrAlreadyDecided))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestRejectDescartaTodoEfecto(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("40")
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.AddLine(c.ID, "art-1", qty("45"))
	require.NoError(t, err)

	out, err := fx.uc.Reject(context.Background(), c.ID, "boss", "conteo dudoso")

	require.NoError(t, err)
	assert.Equal(t, entity.CountStatusRejected, out.Status)
	assert.Equal(t, "conteo dudoso", out.Reason)
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("40")), "el rechazo no toca el ledger")
}

func TestRejectTrasValidacionFalla(t *testing.T) {
	fx := newFixture()
	c, err := fx.uc.Create("wh-1", "resp", "")
	require.NoError(t, err)
	_, err = fx.uc.Validate(context.Background(), c.ID, "boss")
	require.NoError(t, err)

	_, err = fx.uc.Reject(context.Background(), c.ID, "boss", "tarde")
	assert.True(t, errors.Is(err, domain.ErrAlreadyDecided))
}
