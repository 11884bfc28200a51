package reader

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) []string {
	t.Helper()

	lineReader := NewLineReader(strings.NewReader(input))
	var lines []string
	for {
		line, err := lineReader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines
			}
			t.Fatalf("unexpected read error: %v", err)
		}
		lines = append(lines, line)
	}
}

func TestReadLineStripsLineEndings(t *testing.T) {
	lines := readAll(t, "alpha\nbeta\r\ngamma\r\r\n")

	want := []string{"alpha", "beta", "gamma"}
	if len(lines) != len(want) {
		t.Fatalf("unexpected line count: %d, want %d", len(lines), len(want))
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("unexpected line %d: %q, want %q", i, lines[i], line)
		}
	}
}

func TestReadLineKeepsFinalLineWithoutNewline(t *testing.T) {
	lines := readAll(t, "first\nsecond")

	if len(lines) != 2 || lines[1] != "second" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestReadLineEmptyInput(t *testing.T) {
	lines := readAll(t, "")

	if len(lines) != 0 {
		t.Fatalf("unexpected lines for empty input: %q", lines)
	}
}

func TestReadLineReplacesInvalidUTF8(t *testing.T) {
	lines := readAll(t, "ok\n\xffbad\xfe\n")

	if len(lines) != 2 {
		t.Fatalf("unexpected line count: %d", len(lines))
	}
	if !strings.Contains(lines[1], "�") {
		t.Fatalf("invalid bytes not replaced: %q", lines[1])
	}
	if strings.Contains(lines[1], "\xff") {
		t.Fatalf("raw invalid byte leaked through: %q", lines[1])
	}
}

func TestReadLineKeepsInteriorCarriageReturn(t *testing.T) {
	lines := readAll(t, "left\rright\n")

	if len(lines) != 1 || lines[0] != "left\rright" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestForEachLineCountsTotal(t *testing.T) {
	var seen []string
	total, err := ForEachLine(strings.NewReader("a\n\nb\n"), func(line string) error {
		seen = append(seen, line)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("unexpected total: %d, want 3", total)
	}
	if len(seen) != 3 || seen[1] != "" {
		t.Fatalf("unexpected lines: %q", seen)
	}
}

func TestForEachLineStopsOnCallbackError(t *testing.T) {
	boundary := errors.New("stop")
	total, err := ForEachLine(strings.NewReader("a\nb\nc\n"), func(line string) error {
		if line == "b" {
			return boundary
		}
		return nil
	})
	if !errors.Is(err, boundary) {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("unexpected total: %d, want 2", total)
	}
}
