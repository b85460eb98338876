package cache

import (
	"sync"
	"time"
)

type item struct {
	answer    string
	expiredAt time.Time
}

// Answers keeps recently delivered assistant answers in memory.
// A hit is served without a provider call and without consuming quota.
// Zero lifeTime disables the cache entirely.
type Answers struct {
	store    map[string]item
	lock     *sync.RWMutex
	lifeTime time.Duration
}

func NewAnswers(lifeTime time.Duration) *Answers {
	return &Answers{
		store:    map[string]item{},
		lock:     &sync.RWMutex{},
		lifeTime: lifeTime,
	}
}

func (c *Answers) Get(key string) (string, bool) {
	if c.lifeTime <= 0 {
		return "", false
	}

	c.lock.RLock()
	defer c.lock.RUnlock()

	item, ok := c.store[key]
	if !ok {
		return "", false
	}

	if c.now().After(item.expiredAt) {
		return "", false
	}

	return item.answer, true
}

func (c *Answers) Set(key string, answer string) {
	if c.lifeTime <= 0 {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.store[key] = item{
		answer:    answer,
		expiredAt: c.now().Add(c.lifeTime),
	}
}

func (c *Answers) now() time.Time {
	return time.Now()
}
