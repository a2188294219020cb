// Package cache кэш с ограничением размера и временем жизни записей
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Expirable LRU-кэш, записи которого устаревают через ttl.
// Безопасен для конкурентного использования.
type Expirable[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// New создает кэш. size <= 0 снимает ограничение размера, ttl <= 0 отключает устаревание.
func New[K comparable, V any](size int, ttl time.Duration) *Expirable[K, V] {
	return &Expirable[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

// Get возвращает значение и признак попадания
func (c *Expirable[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Add добавляет или перезаписывает значение
func (c *Expirable[K, V]) Add(key K, value V) {
	c.lru.Add(key, value)
}

// Remove удаляет ключ
func (c *Expirable[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

// RemoveFunc удаляет все ключи, для которых match вернул true
func (c *Expirable[K, V]) RemoveFunc(match func(K) bool) int {
	removed := 0
	for _, key := range c.lru.Keys() {
		if match(key) && c.lru.Remove(key) {
			removed++
		}
	}
	return removed
}

// Purge очищает кэш
func (c *Expirable[K, V]) Purge() {
	c.lru.Purge()
}

// Len количество записей, включая еще не вычищенные устаревшие
func (c *Expirable[K, V]) Len() int {
	return c.lru.Len()
}
