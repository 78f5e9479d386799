package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish возвращается, когда событие не удалось опубликовать
	ErrPublish = errors.New("events: failed to publish event")
)
