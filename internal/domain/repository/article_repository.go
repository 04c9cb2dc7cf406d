package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ArticleRepository define el puerto de persistencia del catálogo de artículos.
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	GetByCode(code string) (*entity.Article, error)
	// Update no modifica Code: el código es inmutable tras la creación.
	Update(article *entity.Article) error
	List(categoryID, search string, limit, offset int) ([]*entity.Article, error)
	Delete(id string) error
}
