package ledger_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeStockRepo: StockRepository en memoria para probar las invariantes del
// ledger sin base de datos. Devuelve fila en cero si el par no existe, igual
// que el adaptador PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.Stock)}
}

func key(articleID, warehouseID string) string { return articleID + "|" + warehouseID }

func (f *fakeStockRepo) Get(articleID, warehouseID string) (*entity.Stock, error) {
	if s, ok := f.rows[key(articleID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ArticleID: articleID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) GetForUpdate(articleID, warehouseID string) (*entity.Stock, error) {
	return f.Get(articleID, warehouseID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.rows[key(stock.ArticleID, stock.WarehouseID)] = &cp
	return nil
}

func (f *fakeStockRepo) List(articleID, warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) ListBelowThreshold(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

const (
	artA = "11111111-1111-1111-1111-111111111111"
	whA  = "22222222-2222-2222-2222-222222222222"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Increase / Decrease
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_GetCreaFilaCero(t *testing.T) {
	repo := newFakeStockRepo()

	s, err := ledger.Get(repo, artA, whA)
	require.NoError(t, err)
	assert.True(t, s.Quantity.IsZero(), "un par desconocido debe leerse como cero")
}

func TestLedger_IncreaseSumaCantidad(t *testing.T) {
	repo := newFakeStockRepo()

	s, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(20), now)
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(20)))

	s, err = ledger.Increase(repo, artA, whA, decimal.NewFromInt(5), now)
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(25)),
		"la cantidad resultante debe ser la suma de los deltas aplicados")
}

func TestLedger_IncreaseRechazaCantidadNoPositiva(t *testing.T) {
	repo := newFakeStockRepo()

	_, err := ledger.Increase(repo, artA, whA, decimal.Zero, now)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = ledger.Increase(repo, artA, whA, decimal.NewFromInt(-3), now)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	s, _ := ledger.Get(repo, artA, whA)
	assert.True(t, s.Quantity.IsZero(), "una mutación rechazada no debe dejar efecto")
}

func TestLedger_DecreaseRestaCantidad(t *testing.T) {
	repo := newFakeStockRepo()
	_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(15), now)
	require.NoError(t, err)

	s, err := ledger.Decrease(repo, artA, whA, decimal.NewFromInt(10), now)
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestLedger_DecreaseBajoCeroFallaSinEfecto(t *testing.T) {
	repo := newFakeStockRepo()
	_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(15), now)
	require.NoError(t, err)

	_, err = ledger.Decrease(repo, artA, whA, decimal.NewFromInt(20), now)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	s, _ := ledger.Get(repo, artA, whA)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(15)),
		"un decrease que dejaría la cantidad negativa no debe tener efecto")
}

func TestLedger_DecreaseRechazaCantidadNoPositiva(t *testing.T) {
	repo := newFakeStockRepo()

	_, err := ledger.Decrease(repo, artA, whA, decimal.Zero, now)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Set (solo para validación de inventario)
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SetSobrescribeCantidad(t *testing.T) {
	repo := newFakeStockRepo()
	_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(40), now)
	require.NoError(t, err)

	s, err := ledger.Set(repo, artA, whA, decimal.NewFromInt(45), now)
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(45)),
		"Set escribe un valor absoluto, no un delta")
}

func TestLedger_SetAdmiteCeroPeroNoNegativo(t *testing.T) {
	repo := newFakeStockRepo()

	_, err := ledger.Set(repo, artA, whA, decimal.Zero, now)
	require.NoError(t, err)

	_, err = ledger.Set(repo, artA, whA, decimal.NewFromInt(-1), now)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: el bloqueo de fila serializa mutaciones sobre el mismo par
// ──────────────────────────────────────────────────────────────────────────────

// fakeLockingStockRepo reproduce el contrato del adaptador PostgreSQL dentro
// de una transacción: GetForUpdate crea la fila en cero si el par no existe y
// retiene un candado por par hasta que Upsert confirma la escritura. Un
// GetForUpdate concurrente sobre el mismo par espera, como FOR UPDATE.
type fakeLockingStockRepo struct {
	repository.StockRepository
	mu    sync.Mutex
	rows  map[string]*entity.Stock
	locks map[string]*sync.Mutex
}

func newFakeLockingStockRepo() *fakeLockingStockRepo {
	return &fakeLockingStockRepo{
		rows:  make(map[string]*entity.Stock),
		locks: make(map[string]*sync.Mutex),
	}
}

func (f *fakeLockingStockRepo) GetForUpdate(articleID, warehouseID string) (*entity.Stock, error) {
	k := key(articleID, warehouseID)
	f.mu.Lock()
	lock, ok := f.locks[k]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[k] = lock
	}
	f.mu.Unlock()

	lock.Lock()
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[k]
	if !ok {
		s = &entity.Stock{ArticleID: articleID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		f.rows[k] = s
	}
	cp := *s
	return &cp, nil
}

func (f *fakeLockingStockRepo) Upsert(stock *entity.Stock) error {
	k := key(stock.ArticleID, stock.WarehouseID)
	f.mu.Lock()
	cp := *stock
	f.rows[k] = &cp
	lock := f.locks[k]
	f.mu.Unlock()
	lock.Unlock()
	return nil
}

func (f *fakeLockingStockRepo) quantity(articleID, warehouseID string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.rows[key(articleID, warehouseID)]; ok {
		return s.Quantity
	}
	return decimal.Zero
}

func TestLedger_IncreasesConcurrentesSobreParNuevoNoSePierden(t *testing.T) {
	repo := newFakeLockingStockRepo()

	var wg sync.WaitGroup
	for _, d := range []int64{10, 20} {
		wg.Add(1)
		go func(d int64) {
			defer wg.Done()
			_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(d), now)
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	assert.True(t, repo.quantity(artA, whA).Equal(decimal.NewFromInt(30)),
		"la primera mutación de cada escritor debe sumarse, no quedarse con el último")
}

func TestLedger_DecreasesConcurrentesNoDebitanDeMas(t *testing.T) {
	repo := newFakeLockingStockRepo()
	_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(5), now)
	require.NoError(t, err)

	var insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Decrease(repo, artA, whA, decimal.NewFromInt(3), now)
			if errors.Is(err, domain.ErrInsufficientStock) {
				insufficient.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), insufficient.Load(), "solo un decrease cabe en la cantidad disponible")
	assert.True(t, repo.quantity(artA, whA).Equal(decimal.NewFromInt(2)))
}

// La suma de deltas aplicados debe coincidir con la cantidad final para
// cualquier secuencia de operaciones válidas.
func TestLedger_SecuenciaDeDeltas(t *testing.T) {
	repo := newFakeStockRepo()

	deltas := []int64{10, 25, -5, -20, 7}
	expected := int64(0)
	for _, d := range deltas {
		if d > 0 {
			_, err := ledger.Increase(repo, artA, whA, decimal.NewFromInt(d), now)
			require.NoError(t, err)
		} else {
			_, err := ledger.Decrease(repo, artA, whA, decimal.NewFromInt(-d), now)
			require.NoError(t, err)
		}
		expected += d
	}

	s, _ := ledger.Get(repo, artA, whA)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(expected)))
}
