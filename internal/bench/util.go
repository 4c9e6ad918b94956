package bench

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// randForSeed — генератор экземпляра; один сид всегда даёт одну и ту же задачу.
func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ensureDir создаёт родительский каталог файла path, если он задан.
func ensureDir(path string) error {
	d := filepath.Dir(path)
	if d == "." {
		return nil
	}
	return os.MkdirAll(d, 0o755)
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
