package engine

import (
	"math/rand"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// scriptedSource 按脚本回放的随机源，耗尽后恒返回0
type scriptedSource struct {
	vals []int64
	i    int
}

func (s *scriptedSource) Int63() int64 {
	if s.i < len(s.vals) {
		v := s.vals[s.i]
		s.i++
		return v
	}
	return 0
}

func (s *scriptedSource) Seed(int64) {}

// rollVal 把期望的Float64掷骰值编码为随机源输出
func rollVal(f float64) int64 {
	return int64(f * (1 << 63))
}

// newTestEngine 固定时钟、脚本化随机源的测试引擎
// rolls 中每个掷骰值后，池内选取默认取第0个元素
func newTestEngine(now time.Time, vals ...int64) *Engine {
	src := &scriptedSource{vals: vals}
	return NewWithSource(rand.New(src), func() time.Time { return now })
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestState 一份全新的初始存档，日期对齐测试时钟
func newTestState() *models.GameState {
	return catalog.InitialState("2026-03-14")
}
