package replenishment_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeRepo replica la transición condicional del adaptador real: Approve y
// Reject solo tienen efecto si la demanda sigue pending.
type fakeRepo struct {
	repository.ReplenishmentRepository
	rows map[string]*entity.ReplenishmentRequest
}

func (f *fakeRepo) Create(r *entity.ReplenishmentRequest) error {
	clone := *r
	f.rows[r.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) Approve(id, approverID string, quantityApproved decimal.Decimal, note string, decidedAt time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != entity.ReplenishmentStatusPending {
		return false, nil
	}
	r.Status = entity.ReplenishmentStatusApproved
	r.ApproverID = approverID
	r.QuantityApproved = &quantityApproved
	r.DecisionNote = note
	r.DecidedAt = &decidedAt
	return true, nil
}

func (f *fakeRepo) Reject(id, approverID, note string, decidedAt time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != entity.ReplenishmentStatusPending {
		return false, nil
	}
	r.Status = entity.ReplenishmentStatusRejected
	r.ApproverID = approverID
	r.DecisionNote = note
	r.DecidedAt = &decidedAt
	return true, nil
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

func newUseCase() (*replenishment.UseCase, *fakeRepo) {
	repo := &fakeRepo{rows: make(map[string]*entity.ReplenishmentRequest)}
	uc := replenishment.NewUseCase(
		repo,
		&fakeArticleRepo{ids: map[string]bool{"art-1": true}},
		&fakeWarehouseRepo{ids: map[string]bool{"wh-1": true}},
	)
	return uc, repo
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createPending(t *testing.T, uc *replenishment.UseCase) *entity.ReplenishmentRequest {
	t.Helper()
	r, err := uc.Create(replenishment.CreateInput{
		WarehouseID:       "wh-1",
		ArticleID:         "art-1",
		QuantityRequested: qty("40"),
		RequesterID:       "u1",
	})
	require.NoError(t, err)
	return r
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePrioridadPorDefectoNormal(t *testing.T) {
	uc, _ := newUseCase()

	r := createPending(t, uc)

	assert.Equal(t, entity.PriorityNormal, r.Priority)
	assert.Equal(t, entity.ReplenishmentStatusPending, r.Status)
}

func TestCreateRechazaPrioridadDesconocida(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Create(replenishment.CreateInput{
		WarehouseID:       "wh-1",
		ArticleID:         "art-1",
		QuantityRequested: qty("1"),
		Priority:          "urgentisima",
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateRechazaCantidadNoPositiva(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Create(replenishment.CreateInput{
		WarehouseID:       "wh-1",
		ArticleID:         "art-1",
		QuantityRequested: qty("0"),
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

// ──────────────────────────────────────────────────────────────────────────────
// Decisión
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveSinCantidadUsaLaSolicitada(t *testing.T) {
	uc, _ := newUseCase()
	r := createPending(t, uc)

	out, err := uc.Approve(r.ID, "boss", nil, "ok")

	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentStatusApproved, out.Status)
	require.NotNil(t, out.QuantityApproved)
	assert.True(t, out.QuantityApproved.Equal(qty("40")))
}

func TestApproveConCantidadDistinta(t *testing.T) {
	uc, _ := newUseCase()
	r := createPending(t, uc)
	approved := qty("25")

	out, err := uc.Approve(r.ID, "boss", &approved, "parcial")

	require.NoError(t, err)
	require.NotNil(t, out.QuantityApproved)
	assert.True(t, out.QuantityApproved.Equal(qty("25")))
}

func TestApproveRechazaCantidadNoPositiva(t *testing.T) {
	uc, _ := newUseCase()
	r := createPending(t, uc)
	zero := qty("0")

	_, err := uc.Approve(r.ID, "boss", &zero, "")

	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestSegundaDecisionFalla(t *testing.T) {
	uc, _ := newUseCase()
	r := createPending(t, uc)

	_, err := uc.Approve(r.ID, "boss", nil, "")
	require.NoError(t, err)

	_, err = uc.Approve(r.ID, "boss", nil, "")
	assert.True(t, errors.Is(err, domain.ErrAlreadyDecided))

	_, err = uc.Reject(r.ID, "boss", "tarde")
	assert.True(t, errors.Is(err, domain.ErrAlreadyDecided))
}

func TestRejectRegistraNota(t *testing.T) {
	uc, repo := newUseCase()
	r := createPending(t, uc)

	out, err := uc.Reject(r.ID, "boss", "sin presupuesto")

	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentStatusRejected, out.Status)
	assert.Equal(t, "sin presupuesto", out.DecisionNote)
	stored := repo.rows[r.ID]
	assert.Equal(t, entity.ReplenishmentStatusRejected, stored.Status)
}

func TestDecisionSobreDemandaInexistente(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Approve("nope", "boss", nil, "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
