package dice

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/logger"
)

// Request asks for one die of a type, optionally with a forced value.
type Request struct {
	Type  string
	Value *int
}

// Unit is one physical die produced from a request.
type Unit struct {
	Kind   Kind
	Target *int // requested value; the full total for d100 halves
	Group  int  // index of the originating request
}

var requestKinds = map[string][]Kind{
	"d4":   {D4},
	"d6":   {D6},
	"d8":   {D8},
	"d10":  {D10},
	"d12":  {D12},
	"d20":  {D20},
	"d100": {D100Units, D100Tens},
}

var requestMax = map[string]int{
	"d4": 4, "d6": 6, "d8": 8, "d10": 10, "d12": 12, "d20": 20, "d100": 100,
}

// Range returns the values a request type can produce.
func Range(typ string) (lo, hi int, ok bool) {
	hi, ok = requestMax[typ]
	return 1, hi, ok
}

// Expand turns requests into physical dice. A d100 request yields a units
// and a tens die sharing its target. Unknown types fall back to d6.
func Expand(reqs []Request) []Unit {
	var units []Unit
	for i, r := range reqs {
		kinds, ok := requestKinds[r.Type]
		if !ok {
			logger.Warn("unknown die type, using d6", zap.String("type", r.Type))
			kinds = requestKinds["d6"]
		}
		for _, k := range kinds {
			u := Unit{Kind: k, Group: i}
			if r.Value != nil {
				v := *r.Value
				u.Target = &v
			}
			units = append(units, u)
		}
	}
	return units
}

// ParseRequest parses "d20" or "d20=17".
func ParseRequest(s string) (Request, error) {
	typ, val, hasVal := strings.Cut(strings.TrimSpace(s), "=")
	r := Request{Type: strings.ToLower(typ)}
	if !hasVal {
		return r, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return Request{}, fmt.Errorf("parsing value of %q: %w", s, err)
	}
	if lo, hi, ok := Range(r.Type); ok && (v < lo || v > hi) {
		return Request{}, fmt.Errorf("%s cannot show %d (range %d-%d)", r.Type, v, lo, hi)
	}
	r.Value = &v
	return r, nil
}

// ParseRequests parses a list of request arguments.
func ParseRequests(args []string) ([]Request, error) {
	reqs := make([]Request, 0, len(args))
	for _, a := range args {
		r, err := ParseRequest(a)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}
