package templategen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizhive/quizgen/internal/quiz"
)

// Generator builds questions from the template bank. Safe for concurrent
// use; randomness is serialized behind the mutex.
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	bank *Bank
}

// Option customizes a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic. Two generators with the
// same seed produce identical question sequences for identical requests.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithBank replaces the built-in bank.
func WithBank(b *Bank) Option {
	return func(g *Generator) { g.bank = b }
}

// NewGenerator builds a template generator with the default bank and a
// time-seeded source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		bank: DefaultBank(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Topics lists the topics the underlying bank covers explicitly.
func (g *Generator) Topics() []string {
	return g.bank.Topics()
}

// pick is one (template, card) combination. Used as the dedup key so a
// batch exhausts distinct combinations before repeating any.
type pick struct {
	kind     quiz.Kind
	template int
	card     int
}

// Generate returns exactly req.Count questions. It never fails: the
// request is assumed to be validated by the caller, and unknown topics
// fall back to the generic entry.
func (g *Generator) Generate(req quiz.Request) []quiz.Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry := g.bank.Lookup(req.Topic)
	set := entry.level(req.Difficulty)
	pool := cardPool(set.Cards, req.Keywords)

	used := make(map[pick]bool)
	out := make([]quiz.Question, 0, req.Count)

	for i := 0; i < req.Count; i++ {
		kind := quiz.KindFor(req.Difficulty, i, req.Count)
		out = append(out, g.build(req, entry, set, kind, used, pool))
	}
	return out
}

// cardPool returns the card indices eligible for a request. Keywords
// narrow the pool to concepts mentioning them; keywords matching nothing
// leave the pool unrestricted.
func cardPool(cards []Card, keywords []string) []int {
	var matched []int
	for i, c := range cards {
		concept := strings.ToLower(c.Concept)
		for _, k := range keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" && strings.Contains(concept, k) {
				matched = append(matched, i)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	all := make([]int, len(cards))
	for i := range all {
		all[i] = i
	}
	return all
}

// build assembles one question, preferring a (template, card) combination
// the batch has not used. Repeats are allowed only once every combination
// for the kind is exhausted.
func (g *Generator) build(req quiz.Request, entry Entry, set LevelSet, kind quiz.Kind, used map[pick]bool, pool []int) quiz.Question {
	templates := set.Recall
	if kind == quiz.KindApplied {
		templates = set.Applied
	}

	p := g.choose(len(templates), pool, kind, used)
	used[p] = true

	card := set.Cards[p.card]
	concept := card.Concept
	if entry.Topic == "" {
		concept = fmt.Sprintf("%s in %s", card.Concept, req.Topic)
	}

	var prompt string
	if kind == quiz.KindApplied {
		other := set.Cards[(p.card+1+g.rng.Intn(len(set.Cards)-1))%len(set.Cards)]
		second := other.Concept
		if entry.Topic == "" {
			second = fmt.Sprintf("%s in %s", other.Concept, req.Topic)
		}
		prompt = fmt.Sprintf(templates[p.template], concept, second)
	} else {
		prompt = fmt.Sprintf(templates[p.template], concept)
	}

	return quiz.Question{
		ID:          uuid.NewString(),
		Prompt:      prompt,
		Answer:      card.Answer,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Source:      quiz.SourceTemplate,
		Kind:        kind,
		Choices:     g.choices(card, set),
		Explanation: card.Explain,
	}
}

// choose picks a random (template, card) combination from the card pool,
// retrying for an unused one while any remain.
func (g *Generator) choose(nTemplates int, pool []int, kind quiz.Kind, used map[pick]bool) pick {
	remaining := 0
	for t := 0; t < nTemplates; t++ {
		for _, c := range pool {
			if !used[pick{kind, t, c}] {
				remaining++
			}
		}
	}

	random := func() pick {
		return pick{kind, g.rng.Intn(nTemplates), pool[g.rng.Intn(len(pool))]}
	}

	p := random()
	if remaining == 0 {
		return p
	}
	for used[p] {
		p = random()
	}
	return p
}

// choices builds four options: the card's answer plus three distractors
// drawn from the other cards' answers and the level's distractor pool.
func (g *Generator) choices(card Card, set LevelSet) []string {
	pool := make([]string, 0, len(set.Cards)+len(set.Distractors)+len(fallbackDistractors))
	for _, c := range set.Cards {
		if c.Answer != card.Answer {
			pool = append(pool, c.Answer)
		}
	}
	pool = append(pool, set.Distractors...)
	pool = append(pool, fallbackDistractors...)

	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	choices := []string{card.Answer}
	seen := map[string]bool{card.Answer: true}
	for _, d := range pool {
		if len(choices) == 4 {
			break
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		choices = append(choices, d)
	}

	g.rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}
