package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

type subscription struct {
	id       uint64
	listener Listener
}

// Bus - это наша шина событий.
type Bus struct {
	listeners map[string][]subscription
	nextID    uint64
	mu        sync.RWMutex
	logger    *zap.Logger
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]subscription),
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
// Возвращает функцию отписки: подписка на монтировании, отписка на демонтаже.
func (b *Bus) Subscribe(eventName string, listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventName] = append(b.listeners[eventName], subscription{id: id, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.listeners[eventName]
		for i, s := range subs {
			if s.id == id {
				b.listeners[eventName] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(b.listeners[eventName]) == 0 {
			delete(b.listeners, eventName)
		}
	}
}

// Publish публикует событие. Все подписчики будут вызваны.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	if subs, ok := b.listeners[eventName]; ok {
		for _, s := range subs {
			go func(l Listener) {
				// Контекст с таймаутом, чтобы избежать "вечных" горутин.
				ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
				defer cancel()

				// Логируем ошибки от слушателей, а не игнорируем их.
				if err := l(ctxWithTimeout, event); err != nil {
					b.logger.Error("Ошибка в обработчике события",
						zap.String("event", eventName),
						zap.Error(err),
					)
				}
			}(s.listener)
		}
	}
}
