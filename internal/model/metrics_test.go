package model

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestPerformanceMetricsCounters 验证文件数与行数的累计。
func TestPerformanceMetricsCounters(t *testing.T) {
	var buffer bytes.Buffer
	metrics := NewPerformanceMetricsWithWriter(&buffer, false)

	metrics.Update(5)
	metrics.Update(6)

	if metrics.FilesProcessed() != 2 {
		t.Fatalf("expected 2 files, got %d", metrics.FilesProcessed())
	}
	if metrics.LinesProcessed() != 11 {
		t.Fatalf("expected 11 lines, got %d", metrics.LinesProcessed())
	}
	if metrics.Elapsed() <= 0 {
		t.Fatalf("elapsed should be positive, got %v", metrics.Elapsed())
	}
}

// TestPerformanceMetricsProgressThrottled 验证进度行按最小间隔刷新。
func TestPerformanceMetricsProgressThrottled(t *testing.T) {
	var buffer bytes.Buffer
	metrics := NewPerformanceMetricsWithWriter(&buffer, true)

	metrics.Update(3)
	if buffer.Len() != 0 {
		t.Fatalf("update within interval should not print, got %q", buffer.String())
	}

	metrics.lastUpdate = time.Now().Add(-2 * progressInterval)
	metrics.Update(4)

	output := buffer.String()
	if !strings.HasPrefix(output, "\rProcessed 2 files") {
		t.Fatalf("unexpected progress line: %q", output)
	}
	if !strings.Contains(output, "and 7 lines") || !strings.Contains(output, "lines/sec") {
		t.Fatalf("progress line missing counters: %q", output)
	}
}

// TestPerformanceMetricsProgressDisabled 验证关闭进度后不输出任何内容。
func TestPerformanceMetricsProgressDisabled(t *testing.T) {
	var buffer bytes.Buffer
	metrics := NewPerformanceMetricsWithWriter(&buffer, false)

	metrics.lastUpdate = time.Now().Add(-2 * progressInterval)
	metrics.Update(9)

	if buffer.Len() != 0 {
		t.Fatalf("disabled progress should stay silent, got %q", buffer.String())
	}
}

// TestSafeRate 验证速率计算的除零保护。
func TestSafeRate(t *testing.T) {
	cases := []struct {
		value   int64
		elapsed float64
		want    float64
	}{
		{10, 2.0, 5.0},
		{10, 0, 0},
		{10, -1, 0},
		{0, 5, 0},
	}

	for _, tc := range cases {
		if got := SafeRate(tc.value, tc.elapsed); got != tc.want {
			t.Fatalf("SafeRate(%d, %v) = %v, want %v", tc.value, tc.elapsed, got, tc.want)
		}
	}
}

// TestSafePercentage 验证百分比计算的除零保护。
func TestSafePercentage(t *testing.T) {
	cases := []struct {
		numerator   int64
		denominator int64
		want        float64
	}{
		{1, 2, 50},
		{7, 0, 0},
		{0, 9, 0},
		{11, 11, 100},
	}

	for _, tc := range cases {
		if got := SafePercentage(tc.numerator, tc.denominator); got != tc.want {
			t.Fatalf("SafePercentage(%d, %d) = %v, want %v", tc.numerator, tc.denominator, got, tc.want)
		}
	}
}
