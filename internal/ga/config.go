package ga

import "fmt"

type Config struct {
	Population int

	// Generations — число поколений; 0 означает GenerationsPerJob × число работ.
	Generations       int
	GenerationsPerJob int

	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
}

func DefaultConfig() Config {
	return Config{
		Population:        100,
		Generations:       0,
		GenerationsPerJob: 8,
		Elite:             4,
		TournamentSize:    5,
		CrossoverRate:     0.90,
		MutationRate:      0.20,
	}
}

// generations возвращает фактическое число поколений для экземпляра из n работ.
func (c Config) generations(n int) int {
	if c.Generations > 0 {
		return c.Generations
	}
	return c.GenerationsPerJob * n
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf("размер популяции должен быть > 1 (получено %d)", c.Population)
	}
	if c.Generations <= 0 && c.GenerationsPerJob <= 0 {
		return fmt.Errorf("должно быть задано Generations > 0 или GenerationsPerJob > 0")
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf("число элитных особей должно быть в диапазоне [0, population) (получено %d)", c.Elite)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("размер турнира должен быть > 0 (получено %d)", c.TournamentSize)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"кроссовера", c.CrossoverRate},
		{"мутации", c.MutationRate},
	} {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("вероятность %s должна быть в диапазоне [0,1] (получено %f)", p.name, p.v)
		}
	}
	return nil
}
