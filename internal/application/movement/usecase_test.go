package movement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/movement"
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

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]decimal.Decimal)}
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

type fakeMovementRepo struct {
	repository.MovementRepository
	rows map[string]*entity.Movement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{rows: make(map[string]*entity.Movement)}
}

func (f *fakeMovementRepo) CreateIfAbsent(m *entity.Movement) (bool, error) {
	if _, ok := f.rows[m.ID]; ok {
		return false, nil
	}
	clone := *m
	f.rows[m.ID] = &clone
	return true, nil
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	if _, ok := f.rows[m.ID]; ok {
		return domain.ErrDuplicate
	}
	clone := *m
	f.rows[m.ID] = &clone
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

type fakeArticleRepo struct {
	repository.ArticleRepository
	ids map[string]bool
}

func (f *fakeArticleRepo) GetByID(id string) (*entity.Article, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &entity.Article{ID: id, Code: "ART-" + id, IsActive: true}, nil
}

type fakeWarehouseRepo struct {
	repository.WarehouseRepository
	ids map[string]bool
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "WH " + id, IsActive: true}, nil
}

// fakeTxRunner simula la transacción: toma una foto de los fakes antes del
// callback y la restaura si falla, imitando el rollback de PostgreSQL.
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	movSnap := make(map[string]*entity.Movement, len(f.movRepo.rows))
	for k, v := range f.movRepo.rows {
		clone := *v
		movSnap[k] = &clone
	}
	stockSnap := make(map[string]decimal.Decimal, len(f.stockRepo.rows))
	for k, v := range f.stockRepo.rows {
		stockSnap[k] = v
	}
	if err := fn(f.movRepo, f.stockRepo); err != nil {
		f.movRepo.rows = movSnap
		f.stockRepo.rows = stockSnap
		return err
	}
	return nil
}

type fakeAuthorizer struct {
	err  error
	auth *movement.IssueAuthorization
}

func (f *fakeAuthorizer) AuthorizeIssue(_ context.Context, _, warehouseID string) (*movement.IssueAuthorization, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.auth != nil {
		return f.auth, nil
	}
	return &movement.IssueAuthorization{SubjectID: "u1", Role: domain.RoleAdmin, WarehouseID: warehouseID}, nil
}

type fixture struct {
	uc        *movement.ProcessUseCase
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
}

func newFixture(authorizer movement.IssueAuthorizer) *fixture {
	movRepo := newFakeMovementRepo()
	stockRepo := newFakeStockRepo()
	tx := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo}
	uc := movement.NewProcessUseCase(
		tx,
		movRepo,
		&fakeArticleRepo{ids: map[string]bool{"art-1": true}},
		&fakeWarehouseRepo{ids: map[string]bool{"wh-1": true, "wh-2": true}},
		authorizer,
	)
	return &fixture{uc: uc, movRepo: movRepo, stockRepo: stockRepo}
}

func (fx *fixture) quantity(t *testing.T, articleID, warehouseID string) decimal.Decimal {
	t.Helper()
	s, err := fx.stockRepo.Get(articleID, warehouseID)
	require.NoError(t, err)
	return s.Quantity
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessReceiptIncrementaDestino(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	out, applied, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "art-1",
		Type:          entity.MovementTypeReceipt,
		Quantity:      qty("10"),
		DestinationID: "wh-1",
		ActorID:       "u1",
	})

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, entity.MovementStatusApplied, out.Status)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("10")))
}

func TestProcessIssueDecrementaOrigen(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("20")

	out, applied, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID: "art-1",
		Type:      entity.MovementTypeIssue,
		Quantity:  qty("7"),
		SourceID:  "wh-1",
		ActorID:   "u1",
	})

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, entity.MovementStatusApplied, out.Status)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("13")))
}

func TestProcessReturnIncrementaDestino(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	fx.stockRepo.rows[stockKey("art-1", "wh-2")] = qty("3")

	_, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "art-1",
		Type:          entity.MovementTypeReturn,
		Quantity:      qty("2"),
		DestinationID: "wh-2",
		ActorID:       "u1",
	})

	require.NoError(t, err)
	assert.True(t, fx.quantity(t, "art-1", "wh-2").Equal(qty("5")))
}

func TestProcessTransferEsInformativo(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("10")

	out, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "art-1",
		Type:          entity.MovementTypeTransfer,
		Quantity:      qty("4"),
		SourceID:      "wh-1",
		DestinationID: "wh-2",
		ActorID:       "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusApplied, out.Status)
	// El workflow de transferencia aplica la cantidad, no este movimiento.
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("10")))
	assert.True(t, fx.quantity(t, "art-1", "wh-2").Equal(qty("0")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessReintentoMismoIDAplicaUnaVez(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	in := movement.Input{
		ID:            "11111111-1111-1111-1111-111111111111",
		ArticleID:     "art-1",
		Type:          entity.MovementTypeReceipt,
		Quantity:      qty("10"),
		DestinationID: "wh-1",
		ActorID:       "u1",
	}

	first, applied, err := fx.uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, applied, "la primera llamada aplica el movimiento")

	second, applied, err := fx.uc.Process(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, applied, "el reintento no cuenta como un movimiento aplicado más")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.MovementStatusApplied, second.Status)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "el reintento devuelve la fila almacenada, no el input reconstruido")
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("10")), "el reintento no debe volver a sumar")
	assert.Len(t, fx.movRepo.rows, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessIssueStockInsuficientePersisteRechazo(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("5")

	out, _, err := fx.uc.Process(context.Background(), movement.Input{
		ID:        "22222222-2222-2222-2222-222222222222",
		ArticleID: "art-1",
		Type:      entity.MovementTypeIssue,
		Quantity:  qty("9"),
		SourceID:  "wh-1",
		ActorID:   "u1",
	})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	require.NotNil(t, out)
	assert.Equal(t, entity.MovementStatusRejected, out.Status)
	assert.NotEmpty(t, out.RejectionReason)
	// El rechazo se guarda con ID propio: el ID del cliente queda libre para
	// reintentar tras corregir la causa.
	assert.NotEqual(t, "22222222-2222-2222-2222-222222222222", out.ID)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("5")), "el ledger no debe cambiar")
}

func TestProcessIssueReintentoTrasRechazoPuedeAplicarse(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("5")
	in := movement.Input{
		ID:        "33333333-3333-3333-3333-333333333333",
		ArticleID: "art-1",
		Type:      entity.MovementTypeIssue,
		Quantity:  qty("9"),
		SourceID:  "wh-1",
		ActorID:   "u1",
	}

	_, _, err := fx.uc.Process(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Llega stock y el cliente reintenta con el mismo ID.
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("15")
	out, applied, err := fx.uc.Process(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, entity.MovementStatusApplied, out.Status)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("6")))
}

func TestProcessIssueAutorizacionNegadaNoTocaLedger(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{err: domain.ErrUnauthorized})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("20")

	out, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:  "art-1",
		Type:       entity.MovementTypeIssue,
		Quantity:   qty("5"),
		SourceID:   "wh-1",
		ActorID:    "u1",
		Credential: "token",
	})

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	require.NotNil(t, out)
	assert.Equal(t, entity.MovementStatusRejected, out.Status)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("20")))
}

func TestProcessIssueServicioCaidoNoTocaLedger(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{err: domain.ErrServiceUnavailable})
	fx.stockRepo.rows[stockKey("art-1", "wh-1")] = qty("20")

	out, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:  "art-1",
		Type:       entity.MovementTypeIssue,
		Quantity:   qty("5"),
		SourceID:   "wh-1",
		ActorID:    "u1",
		Credential: "token",
	})

	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
	require.NotNil(t, out)
	assert.Equal(t, entity.MovementStatusRejected, out.Status)
	assert.True(t, fx.quantity(t, "art-1", "wh-1").Equal(qty("20")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessRechazaCantidadNoPositiva(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	for _, q := range []string{"0", "-3"} {
		_, _, err := fx.uc.Process(context.Background(), movement.Input{
			ArticleID:     "art-1",
			Type:          entity.MovementTypeReceipt,
			Quantity:      qty(q),
			DestinationID: "wh-1",
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidAmount), "cantidad %s", q)
	}
	assert.Empty(t, fx.movRepo.rows, "nada debe persistirse")
}

func TestProcessRechazaTipoDesconocido(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	_, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "art-1",
		Type:          "teleport",
		Quantity:      qty("1"),
		DestinationID: "wh-1",
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProcessRechazaAlmacenFaltantePorTipo(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	cases := []movement.Input{
		{ArticleID: "art-1", Type: entity.MovementTypeReceipt, Quantity: qty("1")},                                              // sin destino
		{ArticleID: "art-1", Type: entity.MovementTypeIssue, Quantity: qty("1")},                                                // sin origen
		{ArticleID: "art-1", Type: entity.MovementTypeTransfer, Quantity: qty("1"), SourceID: "wh-1", DestinationID: "wh-1"},    // origen == destino
		{ArticleID: "art-1", Type: entity.MovementTypeTransfer, Quantity: qty("1"), SourceID: "wh-1"},                           // sin destino
	}
	for i, in := range cases {
		_, _, err := fx.uc.Process(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "caso %d", i)
	}
}

func TestProcessArticuloInexistente(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	_, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "nope",
		Type:          entity.MovementTypeReceipt,
		Quantity:      qty("1"),
		DestinationID: "wh-1",
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProcessAlmacenInexistente(t *testing.T) {
	fx := newFixture(&fakeAuthorizer{})

	_, _, err := fx.uc.Process(context.Background(), movement.Input{
		ArticleID:     "art-1",
		Type:          entity.MovementTypeReceipt,
		Quantity:      qty("1"),
		DestinationID: "wh-nope",
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
