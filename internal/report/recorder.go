package report

// Recorder накапливает все события в памяти.
type Recorder struct {
	Iterations []Iteration
	Finals     []Final
}

func (r *Recorder) Iteration(it Iteration) {
	r.Iterations = append(r.Iterations, it)
}

func (r *Recorder) Final(f Final) {
	r.Finals = append(r.Finals, f)
}

// Last возвращает последний итог запуска.
func (r *Recorder) Last() (Final, bool) {
	if len(r.Finals) == 0 {
		return Final{}, false
	}
	return r.Finals[len(r.Finals)-1], true
}
