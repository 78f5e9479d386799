package cache

import "errors"

var (
	// ErrConnect возвращается, если Redis недоступен при старте
	ErrConnect = errors.New("cache: failed to connect to redis")

	// errMiss ключ отсутствует в кэше
	errMiss = errors.New("cache: miss")
)
