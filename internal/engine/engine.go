// Package engine 实现成长与经济结算的核心规则
package engine

import (
	"math/rand"
	"time"
)

// Engine 规则引擎，持有随机源与时钟便于测试注入
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// New 创建默认规则引擎
func New() *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewWithSource 创建指定随机源与时钟的规则引擎
func NewWithSource(rng *rand.Rand, now func() time.Time) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// Today 以 YYYY-MM-DD 格式返回当前日期
func (e *Engine) Today() string {
	return e.now().Format("2006-01-02")
}

// Now 返回引擎时钟的当前时间
func (e *Engine) Now() time.Time {
	return e.now()
}
