// Package reader 提供容错的逐行读取能力。
// 源码文件可能混用 LF/CRLF 换行，也可能包含非法 UTF-8 字节，
// 读取层统一把它们整理成可直接分析的行文本。
package reader

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// replacement 用于替换非法 UTF-8 字节序列。
const replacement = "�"

// LineReader 按行读取任意字节流。
//
// 注意：
// - 行尾的 \n 与 \r 序列会被整体剥离
// - 非法 UTF-8 字节按 Unicode 替换字符处理，不会中断读取
// - 最后一行即使没有换行符也会完整返回
type LineReader struct {
	source *bufio.Reader
}

// NewLineReader 创建行读取器。
func NewLineReader(source io.Reader) *LineReader {
	return &LineReader{source: bufio.NewReader(source)}
}

// ReadLine 返回下一行文本。
// 数据读完后返回 io.EOF，其余错误原样透传。
func (r *LineReader) ReadLine() (string, error) {
	raw, err := r.source.ReadBytes('\n')
	if len(raw) == 0 {
		if err != nil {
			return "", err
		}
		return "", io.EOF
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	line := strings.ToValidUTF8(string(raw), replacement)
	return strings.TrimRight(line, "\r\n"), nil
}

// ForEachLine 逐行回调整个数据流，返回读取的总行数。
// 回调返回错误时立即停止。
func ForEachLine(source io.Reader, handle func(line string) error) (int64, error) {
	lineReader := NewLineReader(source)

	var total int64
	for {
		line, err := lineReader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}

		total++
		if handleErr := handle(line); handleErr != nil {
			return total, handleErr
		}
	}
}
