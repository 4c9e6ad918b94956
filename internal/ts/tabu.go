package ts

// TabuList — окно из последних tenure ходов.
// Реализован как кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type TabuList struct {
	m    map[Move]int // ход → число вхождений в окне
	ring []Move
	head int // позиция следующей записи
	size int
}

// NewTabuList создаёт табу-список ёмкостью tenure.
func NewTabuList(tenure int) *TabuList {
	if tenure < 1 {
		tenure = 1
	}
	return &TabuList{
		m:    make(map[Move]int, tenure),
		ring: make([]Move, tenure),
	}
}

// IsTabu проверяет, есть ли ход в окне.
func (t *TabuList) IsTabu(mv Move) bool {
	return t.m[mv.Normalize()] > 0
}

// Record добавляет ход в начало окна. При заполненном окне вытесняется
// самый старый ход.
func (t *TabuList) Record(mv Move) {
	mv = mv.Normalize()
	if t.size == len(t.ring) {
		old := t.ring[t.head]
		if t.m[old]--; t.m[old] <= 0 {
			delete(t.m, old)
		}
		t.size--
	}

	t.ring[t.head] = mv
	t.m[mv]++
	t.size++

	t.head++
	if t.head >= len(t.ring) {
		t.head = 0
	}
}

func (t *TabuList) Len() int { return t.size }

func (t *TabuList) Tenure() int { return len(t.ring) }

// Moves возвращает ходы окна, начиная с самого свежего.
func (t *TabuList) Moves() []Move {
	out := make([]Move, 0, t.size)
	n := len(t.ring)
	for j := 0; j < t.size; j++ {
		out = append(out, t.ring[((t.head-1-j)%n+n)%n])
	}
	return out
}

// Aspiration — критерий аспирации: табу-ход разрешён, если он строго
// улучшает лучшую прибыль.
func Aspiration(candidateProfit, bestProfit float64) bool {
	return candidateProfit > bestProfit
}
