package reference

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("reference.repository: facility not found")

	// ErrDockNotFound возвращается, когда док не найден
	ErrDockNotFound = errors.New("reference.repository: dock not found")

	// ErrVehicleTypeNotFound возвращается, когда тип ТС не найден
	ErrVehicleTypeNotFound = errors.New("reference.repository: vehicle type not found")

	// ErrSupplierNotFound возвращается, когда поставщик не найден
	ErrSupplierNotFound = errors.New("reference.repository: supplier not found")

	// ErrTransportTypeNotFound возвращается, когда тип перевозки не найден
	ErrTransportTypeNotFound = errors.New("reference.repository: transport type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reference.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reference.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reference.repository: failed to scan row")
)
