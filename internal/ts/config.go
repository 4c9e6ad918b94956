package ts

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig оборачивает все ошибки валидации конфигурации.
var ErrInvalidConfig = errors.New("invalid tabu search config")

type Config struct {
	// NumOrders — число работ, должно совпадать с экземпляром задачи.
	NumOrders int

	TabuTenure int

	// TerminationForNotImproving — сколько итераций подряд без улучшения
	// допускается до остановки.
	TerminationForNotImproving int

	// PathRelinkingFrequency — каждая такая итерация выполняет path relinking
	// вместо табу-хода.
	PathRelinkingFrequency int

	// PathRelinkingRequirement — сколько различных ходов собирать за раунд.
	PathRelinkingRequirement int

	// MaxRelinkRounds ограничивает число раундов relinking; 0 — число работ.
	MaxRelinkRounds int
}

func DefaultConfig() Config {
	return Config{
		NumOrders:                  50,
		TabuTenure:                 150,
		TerminationForNotImproving: 2000,
		PathRelinkingFrequency:     50,
		PathRelinkingRequirement:   500,
		MaxRelinkRounds:            0,
	}
}

func (c Config) Validate() error {
	if c.NumOrders < 3 {
		return fmt.Errorf(
			"%w: NumOrders должно быть >= 3 (получено %d)",
			ErrInvalidConfig, c.NumOrders,
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"%w: TabuTenure должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.TabuTenure,
		)
	}
	if c.TerminationForNotImproving <= 0 {
		return fmt.Errorf(
			"%w: TerminationForNotImproving должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.TerminationForNotImproving,
		)
	}
	if c.PathRelinkingFrequency <= 0 {
		return fmt.Errorf(
			"%w: PathRelinkingFrequency должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.PathRelinkingFrequency,
		)
	}
	if c.PathRelinkingRequirement <= 0 {
		return fmt.Errorf(
			"%w: PathRelinkingRequirement должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.PathRelinkingRequirement,
		)
	}
	if c.MaxRelinkRounds < 0 {
		return fmt.Errorf(
			"%w: MaxRelinkRounds должно быть >= 0 (получено %d)",
			ErrInvalidConfig, c.MaxRelinkRounds,
		)
	}
	return nil
}

// relinkRounds возвращает фактический предел раундов relinking.
func (c Config) relinkRounds() int {
	if c.MaxRelinkRounds > 0 {
		return c.MaxRelinkRounds
	}
	return c.NumOrders
}
