package aoc

// Queue is a FIFO queue. The zero value is an empty queue.
type Queue[T any] struct {
	q []T
}

// NewQueue returns a queue holding in, front first.
func NewQueue[T any](in ...T) Queue[T] {
	return Queue[T]{q: in}
}

func (q *Queue[T]) Len() int { return len(q.q) }

func (q *Queue[T]) Push(v ...T) {
	q.q = append(q.q, v...)
}

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.q) == 0 {
		return zero, false
	}
	v := q.q[0]
	q.q[0] = zero
	q.q = q.q[1:]
	return v, true
}

// While pops values and passes them to f until the queue is empty or f
// returns false. f may push more values.
func (q *Queue[T]) While(f func(T) bool) {
	for {
		v, ok := q.Pop()
		if !ok || !f(v) {
			return
		}
	}
}
