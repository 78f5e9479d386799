package slotchain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChain возвращается, когда на доке нельзя собрать цепочку; можно пробовать следующий док
	ErrNoChain = errors.New("slotchain: no chain on dock")

	// ErrNoStartSlot нет доступного слота, начинающегося ровно в запрошенное время
	ErrNoStartSlot = fmt.Errorf("%w: no slot starts at requested time", ErrNoChain)

	// ErrSlotFull слот цепочки заполнен
	ErrSlotFull = fmt.Errorf("%w: slot is full", ErrNoChain)

	// ErrFacilityCeiling превышен лимит одновременных бронирований объекта по направлению
	ErrFacilityCeiling = fmt.Errorf("%w: facility directional capacity reached", ErrNoChain)

	// ErrChainBroken следующий слот не примыкает к предыдущему (строгий режим)
	ErrChainBroken = fmt.Errorf("%w: slots are not adjacent", ErrNoChain)

	// ErrNotEnoughSlots слоты закончились раньше, чем набралась длительность
	ErrNotEnoughSlots = fmt.Errorf("%w: not enough slots to cover duration", ErrNoChain)

	// ErrSlotGone слот цепочки удален до блокировки
	ErrSlotGone = fmt.Errorf("%w: chain slot no longer exists", ErrNoChain)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("slotchain: internal error")
)
