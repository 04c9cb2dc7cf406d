package movement

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el registro del movimiento y la
// mutación del ledger se confirmen o se reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// IssueAuthorization es el resultado tipado de la consulta de capacidad al
// colaborador externo de autorización: nada de sondear atributos implícitos
// sobre un objeto usuario.
type IssueAuthorization struct {
	SubjectID   string
	Role        string
	WarehouseID string // afiliación de almacén del sujeto (vacía si no aplica)
}

// IssueAuthorizer confirma que el portador de la credencial puede retirar
// stock del almacén indicado. Devuelve domain.ErrUnauthorized si el
// colaborador niega la capacidad y domain.ErrServiceUnavailable si no
// responde dentro del timeout; en ambos casos el ledger queda intacto.
type IssueAuthorizer interface {
	AuthorizeIssue(ctx context.Context, credential, warehouseID string) (*IssueAuthorization, error)
}
