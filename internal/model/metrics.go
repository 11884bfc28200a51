// Package model 定义 mdkloc 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// progressInterval 是进度行的最小刷新间隔。
const progressInterval = time.Second

// PerformanceMetrics 记录扫描吞吐指标。
//
// 注意：
// - 计数器使用原子操作，可以被多个 worker 并发累加
// - 进度行最多每秒刷新一次，使用 \r 覆盖前一行
type PerformanceMetrics struct {
	filesProcessed atomic.Int64
	linesProcessed atomic.Int64
	startTime      time.Time

	mu              sync.Mutex
	lastUpdate      time.Time
	writer          io.Writer
	progressEnabled bool
}

// NewPerformanceMetrics 创建输出到标准输出、启用进度行的指标对象。
func NewPerformanceMetrics() *PerformanceMetrics {
	return NewPerformanceMetricsWithWriter(os.Stdout, true)
}

// NewPerformanceMetricsWithWriter 创建指标对象并指定进度输出目标。
// progressEnabled 为 false 时只累计计数器，不输出进度行。
func NewPerformanceMetricsWithWriter(writer io.Writer, progressEnabled bool) *PerformanceMetrics {
	now := time.Now()
	return &PerformanceMetrics{
		startTime:       now,
		lastUpdate:      now,
		writer:          writer,
		progressEnabled: progressEnabled,
	}
}

// Update 记录一个处理完成的文件及其行数。
func (m *PerformanceMetrics) Update(newLines int64) {
	m.filesProcessed.Add(1)
	m.linesProcessed.Add(newLines)

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if now.Sub(m.lastUpdate) < progressInterval {
		return
	}
	m.lastUpdate = now
	m.printProgressLocked()
}

func (m *PerformanceMetrics) printProgressLocked() {
	if !m.progressEnabled {
		return
	}

	elapsed := time.Since(m.startTime).Seconds()
	files := m.filesProcessed.Load()
	lines := m.linesProcessed.Load()

	fmt.Fprintf(
		m.writer,
		"\rProcessed %d files (%.1f files/sec) and %d lines (%.1f lines/sec)...",
		files,
		SafeRate(files, elapsed),
		lines,
		SafeRate(lines, elapsed),
	)
}

// FilesProcessed 返回已处理文件数。
func (m *PerformanceMetrics) FilesProcessed() int64 {
	return m.filesProcessed.Load()
}

// LinesProcessed 返回已处理行数。
func (m *PerformanceMetrics) LinesProcessed() int64 {
	return m.linesProcessed.Load()
}

// Elapsed 返回自创建以来经过的时间。
func (m *PerformanceMetrics) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// SafeRate 计算速率，耗时为零时返回 0。
func SafeRate(value int64, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return float64(value) / elapsedSeconds
}

// SafePercentage 计算百分比，分母为零时返回 0。
func SafePercentage(numerator int64, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}
