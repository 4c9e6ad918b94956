// Package dataset читает экземпляры задачи в формате Dataslack *.dat.
//
// Файл состоит из блоков по три строки: заголовок, строка значений через
// запятую, пустая строка. Порядок блоков фиксирован: release times,
// processing times, revenues, due dates, deadlines, tardiness penalty costs.
// Первое значение каждого массива относится к фиктивной работе 0.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"oasSearch/internal/oas"
)

// ErrFormat возвращается для файлов, не соответствующих формату.
var ErrFormat = errors.New("malformed dataset file")

// valueLines — номера строк (с нуля), на которых лежат массивы атрибутов.
var valueLines = [6]int{1, 4, 7, 10, 13, 16}

var columnNames = [6]string{
	"release times", "processing times", "revenues",
	"due dates", "deadlines", "tardiness penalty costs",
}

// FileName строит имя файла набора данных по его параметрам.
func FileName(orders, tao, r, instance int) string {
	return fmt.Sprintf("Dataslack_%dorders_Tao%dR%d_%d_without_setup.dat", orders, tao, r, instance)
}

// Parse читает атрибуты работ из r. Длины массивов не сверяются: это делает
// oas.NewInstance.
func Parse(r io.Reader) (oas.Attributes, error) {
	var lines [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.Fields(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return oas.Attributes{}, err
	}

	var cols [6][]float64
	for c, ln := range valueLines {
		if ln >= len(lines) || len(lines[ln]) == 0 {
			return oas.Attributes{}, fmt.Errorf("%w: line %d (%s) is missing", ErrFormat, ln+1, columnNames[c])
		}
		vals, err := parseList(lines[ln][0])
		if err != nil {
			return oas.Attributes{}, fmt.Errorf("%w: line %d (%s): %v", ErrFormat, ln+1, columnNames[c], err)
		}
		cols[c] = vals
	}

	return oas.Attributes{
		ReleaseTimes:    cols[0],
		ProcessingTimes: cols[1],
		Revenues:        cols[2],
		DueDates:        cols[3],
		Deadlines:       cols[4],
		PenaltyWeights:  cols[5],
	}, nil
}

// Load читает файл и строит по нему экземпляр задачи.
func Load(path string) (*oas.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	attrs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inst, err := oas.NewInstance(attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// LoadFrom загружает набор данных из каталога dir по параметрам.
func LoadFrom(dir string, orders, tao, r, instance int) (*oas.Instance, error) {
	return Load(filepath.Join(dir, FileName(orders, tao, r, instance)))
}

func parseList(s string) ([]float64, error) {
	parts := strings.Split(strings.TrimSuffix(s, ","), ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
