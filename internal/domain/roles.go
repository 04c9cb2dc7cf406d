package domain

// Roles reconocidos por el motor. Los nombres vienen del servicio de
// identidad, que es quien los administra.
const (
	RoleAdmin        = "admin"
	RoleStockManager = "responsable_stock"
	RoleStorekeeper  = "magasinier"
)

// CanIssueFrom indica si un rol puede retirar stock del almacén dado. El
// magasinier solo opera sobre su propio almacén de afiliación; los roles de
// gestión operan sobre cualquiera.
func CanIssueFrom(role, affiliatedWarehouseID, warehouseID string) bool {
	switch role {
	case RoleAdmin, RoleStockManager:
		return true
	case RoleStorekeeper:
		return affiliatedWarehouseID != "" && affiliatedWarehouseID == warehouseID
	default:
		return false
	}
}
