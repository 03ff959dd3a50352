package quiz

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Shuffler перемешивает варианты ответов алгоритмом Фишера-Йейтса.
// Безопасен для использования из нескольких горутин.
type Shuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewShuffler создаёт Shuffler с зерном seed.
// Нулевое зерно заменяется текущим временем.
func NewShuffler(seed uint64) *Shuffler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Shuffler{
		rnd: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Shuffle перемешивает options на месте.
func (s *Shuffler) Shuffle(options []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(options) - 1; i > 0; i-- {
		j := s.rnd.IntN(i + 1)
		options[i], options[j] = options[j], options[i]
	}
}
