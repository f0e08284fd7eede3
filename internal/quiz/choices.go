package quiz

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/DanRulev/flashquiz/internal/models"
)

// NumChoices is the size of every choice set shown to the user.
const NumChoices = 4

type ChoiceOrder string

const (
	OrderShuffle ChoiceOrder = "shuffle"
	OrderSorted  ChoiceOrder = "sorted"
)

func ParseChoiceOrder(s string) (ChoiceOrder, error) {
	switch ChoiceOrder(s) {
	case OrderShuffle, OrderSorted:
		return ChoiceOrder(s), nil
	case "":
		return OrderShuffle, nil
	default:
		return "", fmt.Errorf("unknown choice order %q", s)
	}
}

// Generator builds multiple-choice answer sets. It is safe for concurrent use.
type Generator struct {
	order ChoiceOrder

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator using the given order policy. A nil rnd
// gets a freshly seeded source.
func NewGenerator(order ChoiceOrder, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if order == "" {
		order = OrderShuffle
	}

	return &Generator{
		order: order,
		rnd:   rnd,
	}
}

func (g *Generator) Order() ChoiceOrder {
	return g.order
}

// Generate returns NumChoices answers: correctAnswer plus distractors sampled
// from the other answers of flashcards.
func (g *Generator) Generate(flashcards []models.Flashcard, correctAnswer string) ([]string, error) {
	pool := distractorPool(flashcards, correctAnswer)
	if len(pool) < NumChoices-1 {
		return nil, fmt.Errorf("%w: answer %q has %d alternative answers, need %d",
			ErrInsufficientDistractors, correctAnswer, len(pool), NumChoices-1)
	}

	choices := make([]string, 0, NumChoices)
	choices = append(choices, correctAnswer)
	choices = append(choices, g.sample(pool, NumChoices-1)...)

	if g.order == OrderSorted {
		sort.Strings(choices)
	} else {
		g.shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
	}

	return choices, nil
}

// distractorPool collects every answer different from correctAnswer, each
// text once, in set order.
func distractorPool(flashcards []models.Flashcard, correctAnswer string) []string {
	seen := make(map[string]bool, len(flashcards))
	pool := make([]string, 0, len(flashcards))
	for _, fc := range flashcards {
		if fc.Answer == correctAnswer || seen[fc.Answer] {
			continue
		}
		seen[fc.Answer] = true
		pool = append(pool, fc.Answer)
	}
	return pool
}

// sample picks n elements of pool without replacement. pool is reordered.
func (g *Generator) sample(pool []string, n int) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < n; i++ {
		j := i + g.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]string, n)
	copy(out, pool[:n])
	return out
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rnd.Shuffle(n, swap)
}
