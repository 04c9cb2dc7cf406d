package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el ledger. La cantidad se muta
// únicamente a través de movimientos y workflows, nunca por esta vía.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Get devuelve la fila de stock de un par (artículo, almacén); cero si no
// existe todavía.
func (uc *StockUseCase) Get(articleID, warehouseID string) (*dto.StockResponse, error) {
	stock, err := uc.repo.Get(articleID, warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// List lista stock filtrado por artículo y/o almacén.
func (uc *StockUseCase) List(articleID, warehouseID string, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.repo.List(articleID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toStockListResponse(list, limit, offset), nil
}

// ListAlerts lista filas con cantidad bajo el umbral de alerta (candidatas a
// reaprovisionamiento).
func (uc *StockUseCase) ListAlerts(warehouseID string, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.repo.ListBelowThreshold(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toStockListResponse(list, limit, offset), nil
}

func toStockListResponse(list []*entity.Stock, limit, offset int) *dto.StockListResponse {
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ArticleID:      s.ArticleID,
		WarehouseID:    s.WarehouseID,
		Quantity:       s.Quantity,
		AlertThreshold: s.AlertThreshold,
		ExpiryDate:     s.ExpiryDate,
		UpdatedAt:      s.UpdatedAt,
	}
}
