package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ArticleUseCase casos de uso CRUD para el catálogo de artículos.
type ArticleUseCase struct {
	repo         repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, categoryRepo repository.CategoryRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un artículo. El código debe ser único.
func (uc *ArticleUseCase) Create(in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		if cat, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
			return nil, err
		} else if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	if existing, err := uc.repo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	article := &entity.Article{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		UnitMeasure:   in.UnitMeasure,
		EstimatedCost: in.EstimatedCost,
		CategoryID:    in.CategoryID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ArticleUseCase) GetByID(id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	return toArticleResponse(article), nil
}

// Update actualiza un artículo. Code es inmutable y no se toca.
func (uc *ArticleUseCase) Update(id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	if in.Name != nil {
		article.Name = *in.Name
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.UnitMeasure != nil {
		article.UnitMeasure = *in.UnitMeasure
	}
	if in.EstimatedCost != nil {
		article.EstimatedCost = *in.EstimatedCost
	}
	if in.CategoryID != nil {
		article.CategoryID = *in.CategoryID
	}
	if in.IsActive != nil {
		article.IsActive = *in.IsActive
	}
	article.UpdatedAt = time.Now()
	if err := uc.repo.Update(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List lista artículos filtrados por categoría o texto de búsqueda.
func (uc *ArticleUseCase) List(categoryID, search string, limit, offset int) (*dto.ArticleListResponse, error) {
	list, err := uc.repo.List(categoryID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un artículo por ID.
func (uc *ArticleUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:            a.ID,
		Code:          a.Code,
		Name:          a.Name,
		Description:   a.Description,
		UnitMeasure:   a.UnitMeasure,
		EstimatedCost: a.EstimatedCost,
		CategoryID:    a.CategoryID,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
