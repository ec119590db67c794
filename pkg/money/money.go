// Package money хранит денежные суммы в целых центах, а проценты в базисных пунктах,
// чтобы расчёты цены, налога и штрафов не накапливали ошибку двоичной арифметики.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ErrInvalidAmount возвращается при некорректной строке суммы или процента
var ErrInvalidAmount = errors.New("money: invalid amount")

// Money сумма в центах
type Money int64

// Percent процент в базисных пунктах (1% = 100)
type Percent int64

const (
	centsPerUnit      = 100
	basisPointsPerPct = 100
	fullScale         = 100 * basisPointsPerPct // 100% в базисных пунктах
)

// Границы значений, принимаемых из строк и JSON
const (
	MaxAmount  Money   = math.MaxInt64 / fullScale // 9223372036854.77
	MaxPercent Percent = 10000 * basisPointsPerPct // 10000%
)

// FromCents создаёт сумму из центов
func FromCents(cents int64) Money {
	return Money(cents)
}

// FromUnits создаёт сумму из целых единиц валюты
func FromUnits(units int64) Money {
	return Money(units * centsPerUnit)
}

// Parse разбирает строку вида "120", "120.5", "-7,25" в сумму
func Parse(s string) (Money, error) {
	v, err := parseFixed(s, int64(MaxAmount))
	if err != nil {
		return 0, err
	}
	return Money(v), nil
}

// MustParse как Parse, но паникует на ошибке; для констант и тестов
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents возвращает сумму в центах
func (m Money) Cents() int64 {
	return int64(m)
}

// Add складывает суммы
func (m Money) Add(other Money) Money {
	return m + other
}

// IsNegative true для отрицательной суммы
func (m Money) IsNegative() bool {
	return m < 0
}

// MulPercent возвращает m * p / 100%, округлённое до цента по правилу half-up.
// Произведение считается в 128 битах; результат вне int64 насыщается до границы
func (m Money) MulPercent(p Percent) Money {
	return Money(mulDivRoundHalfUp(int64(m), int64(p), fullScale))
}

// String форматирует сумму с двумя знаками после точки
func (m Money) String() string {
	return formatFixed(int64(m), false)
}

// MarshalJSON сериализует сумму строкой, например "132.00"
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON принимает как строку, так и JSON-число
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := parseFixed(unquote(data), int64(MaxAmount))
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// ParsePercent разбирает "12.5" в 1250 базисных пунктов
func ParsePercent(s string) (Percent, error) {
	v, err := parseFixed(s, int64(MaxPercent))
	if err != nil {
		return 0, err
	}
	return Percent(v), nil
}

// MustParsePercent как ParsePercent, но паникует на ошибке
func MustParsePercent(s string) Percent {
	p, err := ParsePercent(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PercentFromInt создаёт целый процент
func PercentFromInt(pct int64) Percent {
	return Percent(pct * basisPointsPerPct)
}

// BasisPoints возвращает процент в базисных пунктах
func (p Percent) BasisPoints() int64 {
	return int64(p)
}

// String форматирует процент без лишних нулей: "20", "12.5"
func (p Percent) String() string {
	return formatFixed(int64(p), true)
}

// MarshalJSON сериализует процент JSON-числом
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON принимает как число, так и строку
func (p *Percent) UnmarshalJSON(data []byte) error {
	v, err := parseFixed(unquote(data), int64(MaxPercent))
	if err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

// mulDivRoundHalfUp считает a*b/den с округлением половины от нуля; den > 0
func mulDivRoundHalfUp(a, b, den int64) int64 {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint(a), absUint(b))

	var carry uint64
	lo, carry = bits.Add64(lo, uint64(den/2), 0)
	hi += carry

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	if hi >= uint64(den) {
		return saturate(neg)
	}
	q, _ := bits.Div64(hi, lo, uint64(den))
	if q > limit {
		return saturate(neg)
	}
	if neg {
		return int64(-q)
	}
	return int64(q)
}

func absUint(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

func saturate(neg bool) int64 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}

// parseFixed разбирает десятичную строку с не более чем двумя знаками после разделителя.
// Значения по модулю больше limit отклоняются
func parseFixed(s string, limit int64) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	// поддержим "," как десятичный разделитель
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: no digits", ErrInvalidAmount)
	}

	intPart, fracPart, seenDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: %q has more than 2 fractional digits", ErrInvalidAmount, s)
	}
	if seenDot && strings.Contains(fracPart, ".") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	var whole int64
	for i := 0; i < len(intPart); i++ {
		c := intPart[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		whole = whole*10 + int64(c-'0')
		if whole > limit/100 {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
		}
	}

	var frac int64
	for i := 0; i < len(fracPart); i++ {
		c := fracPart[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		frac = frac*10 + int64(c-'0')
	}
	if len(fracPart) == 1 {
		frac *= 10
	}

	v := whole*100 + frac
	if v > limit {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func formatFixed(v int64, trim bool) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/100, v%100
	if trim {
		switch {
		case frac == 0:
			return fmt.Sprintf("%s%d", sign, whole)
		case frac%10 == 0:
			return fmt.Sprintf("%s%d.%d", sign, whole, frac/10)
		}
	}
	return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
}

func unquote(data []byte) string {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
