package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadExpr is returned by Parse for malformed dice expressions.
var ErrBadExpr = errors.New("malformed dice expression")

// Expr is a parsed dice expression such as "2d6+1" or "1d4".
// A constant-only expression ("3") has Count == 0.
type Expr struct {
	Count    int
	Size     int
	Modifier int
}

// Parse reads "NdS", "NdS+M", "NdS-M", "dS" or a plain integer.
func Parse(s string) (Expr, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "" {
		return Expr{}, fmt.Errorf("%w: empty", ErrBadExpr)
	}

	idx := strings.IndexByte(raw, 'd')
	if idx < 0 {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Expr{}, fmt.Errorf("%w: %q", ErrBadExpr, s)
		}
		return Expr{Modifier: n}, nil
	}

	count := 1
	if idx > 0 {
		n, err := strconv.Atoi(raw[:idx])
		if err != nil || n < 1 {
			return Expr{}, fmt.Errorf("%w: bad count in %q", ErrBadExpr, s)
		}
		count = n
	}

	rest := raw[idx+1:]
	mod := 0
	if cut := strings.IndexAny(rest, "+-"); cut >= 0 {
		m, err := strconv.Atoi(rest[cut:])
		if err != nil {
			return Expr{}, fmt.Errorf("%w: bad modifier in %q", ErrBadExpr, s)
		}
		mod = m
		rest = rest[:cut]
	}

	size, err := strconv.Atoi(rest)
	if err != nil || size < 1 {
		return Expr{}, fmt.Errorf("%w: bad size in %q", ErrBadExpr, s)
	}

	return Expr{Count: count, Size: size, Modifier: mod}, nil
}

// MustParse is Parse for package-level literals; it panics on error.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// IsConstant reports whether the expression has no dice.
func (e Expr) IsConstant() bool { return e.Count == 0 }

// Roll evaluates the expression once.
func (e Expr) Roll(src Source) int {
	total := e.Modifier
	for range e.Count {
		total += src.IntN(e.Size) + 1
	}
	return total
}

// Group builds a fresh pool of the expression's dice. The modifier is dropped.
func (e Expr) Group() *Group {
	return Of(e.Count, e.Size)
}

func (e Expr) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Modifier)
	}
	s := fmt.Sprintf("%dd%d", e.Count, e.Size)
	switch {
	case e.Modifier > 0:
		s += "+" + strconv.Itoa(e.Modifier)
	case e.Modifier < 0:
		s += strconv.Itoa(e.Modifier)
	}
	return s
}
