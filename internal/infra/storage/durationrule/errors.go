package durationrule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило длительности не найдено
	ErrRuleNotFound = errors.New("durationrule.repository: rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("durationrule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("durationrule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("durationrule.repository: failed to scan row")
)
