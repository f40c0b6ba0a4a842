// Package responder answers free-text product questions from an ordered
// table of pattern rules. The first matching rule wins; the last rule matches
// everything.
package responder

import (
	"errors"
	"fmt"
	"regexp"

	"Showcase/entity"
)

// Query is what a reply producer sees for one question.
type Query struct {
	Language entity.Language
	Product  *entity.Product
	Text     string
}

// Producer renders the reply for one language. It must not mutate shared state.
type Producer func(q Query) (string, error)

type Rule struct {
	Intent  string
	Pattern *regexp.Regexp
	Reply   map[entity.Language]Producer
}

func (r Rule) producer(lang entity.Language) Producer {
	if p, ok := r.Reply[lang]; ok {
		return p
	}
	return r.Reply[entity.English]
}

// Table is an ordered, immutable rule list.
type Table struct {
	rules []Rule
}

// NewTable checks ordering: every rule but the last must reject the empty
// input, and the last must accept it, which makes it the catch-all.
func NewTable(rules ...Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, errors.New("response table is empty")
	}
	last := len(rules) - 1
	for i, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("rule %d (%s): no pattern", i, r.Intent)
		}
		if r.Reply[entity.English] == nil {
			return nil, fmt.Errorf("rule %d (%s): no english reply", i, r.Intent)
		}
		universal := r.Pattern.MatchString("")
		if i < last && universal {
			return nil, fmt.Errorf("rule %d (%s) matches any input but is not last", i, r.Intent)
		}
		if i == last && !universal {
			return nil, fmt.Errorf("last rule (%s) must match any input", r.Intent)
		}
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Table{rules: out}, nil
}

func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Intents lists rule intents in evaluation order.
func (t *Table) Intents() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Intent
	}
	return out
}

func (t *Table) fallback() Rule {
	return t.rules[len(t.rules)-1]
}
