package storage

import (
	"log"
	"sync"
	"time"
)

// Autosaver 防抖自动存档器
// 每次状态变化后重置计时，静默一段时间才真正落盘
type Autosaver struct {
	delay time.Duration
	save  func() error

	mutex sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewAutosaver 创建自动存档器，save 回调在防抖窗口结束后执行
func NewAutosaver(delay time.Duration, save func() error) *Autosaver {
	return &Autosaver{
		delay: delay,
		save:  save,
		done:  make(chan struct{}),
	}
}

// Trigger 标记状态已变化，重置防抖计时
func (a *Autosaver) Trigger() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	select {
	case <-a.done:
		return
	default:
	}

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if err := a.save(); err != nil {
			log.Printf("自动存档失败: %v", err)
		}
	})
}

// Flush 立即落盘并取消未触发的计时
func (a *Autosaver) Flush() error {
	a.mutex.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mutex.Unlock()
	return a.save()
}

// Stop 关闭自动存档器并做最后一次落盘
func (a *Autosaver) Stop() {
	a.mutex.Lock()
	select {
	case <-a.done:
		a.mutex.Unlock()
		return
	default:
		close(a.done)
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mutex.Unlock()

	if err := a.save(); err != nil {
		log.Printf("关闭前存档失败: %v", err)
	}
}
