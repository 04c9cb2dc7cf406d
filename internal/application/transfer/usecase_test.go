package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/transfer"
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

type fakeTransferRepo struct {
	repository.TransferRepository
	rows map[string]*entity.Transfer
}

func (f *fakeTransferRepo) Create(t *entity.Transfer) error {
	clone := *t
	f.rows[t.ID] = &clone
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	return f.GetByID(id)
}

func (f *fakeTransferRepo) Update(t *entity.Transfer) error {
	clone := *t
	f.rows[t.ID] = &clone
	return nil
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
	transferRepo *fakeTransferRepo
	stockRepo    *fakeStockRepo
}

func (f *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(f.transferRepo, f.stockRepo)
}

type fixture struct {
	uc           *transfer.UseCase
	transferRepo *fakeTransferRepo
	stockRepo    *fakeStockRepo
}

func newFixture() *fixture {
	transferRepo := &fakeTransferRepo{rows: make(map[string]*entity.Transfer)}
	stockRepo := &fakeStockRepo{rows: make(map[string]decimal.Decimal)}
	uc := transfer.NewUseCase(
		&fakeTxRunner{transferRepo: transferRepo, stockRepo: stockRepo},
		transferRepo,
		&fakeArticleRepo{ids: map[string]bool{"art-1": true}},
		&fakeWarehouseRepo{ids: map[string]bool{"wh-1": true, "wh-2": true}},
	)
	return &fixture{uc: uc, transferRepo: transferRepo, stockRepo: stockRepo}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRegistraPendienteSinEfectoEnLedger(t *testing.T) {
	fx := newFixture()
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("30")

	out, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		Quantity:      qty("12"),
		InitiatorID:   "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, out.Status)
	// El despacho no debita el origen ni acredita el destino.
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-1")].Equal(qty("30")))
	_, hasDest := fx.stockRepo.rows[stockKey("art-1", "wh-2")]
	assert.False(t, hasDest)
}

func TestCreateRechazaMismoOrigenYDestino(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-1",
		DestinationID: "wh-1",
		Quantity:      qty("5"),
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateRechazaCantidadNoPositiva(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		Quantity:      qty("0"),
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestCreateRechazaEntidadesInexistentes(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-nope",
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		Quantity:      qty("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-nope",
		DestinationID: "wh-2",
		Quantity:      qty("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveIncrementaDestinoUnaVez(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		Quantity:      qty("12"),
		InitiatorID:   "u1",
	})
	require.NoError(t, err)

	out, err := fx.uc.Receive(context.Background(), created.ID, "u2")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusReceived, out.Status)
	assert.Equal(t, "u2", out.ReceiverID)
	require.NotNil(t, out.ReceivedAt)
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-2")].Equal(qty("12")))
}

func TestReceiveSegundaConfirmacionFalla(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), transfer.CreateInput{
		ArticleID:     "art-1",
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		Quantity:      qty("12"),
	})
	require.NoError(t, err)

	_, err = fx.uc.Receive(context.Background(), created.ID, "u2")
	require.NoError(t, err)

	_, err = fx.uc.Receive(context.Background(), created.ID, "u3")
	assert.True(t, errors.Is(err, domain.ErrAlreadyReceived))
	assert.True(t, fx.stockRepo.rows[stockKey("art-1", "wh-2")].Equal(qty("12")), "el destino no debe acreditarse dos veces")
}

func TestReceiveTransferenciaInexistente(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Receive(context.Background(), "nope", "u2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
