// Package power scores how closely magic numbers match their mined numbers.
package power

// Polarity multiplies a power score by +1 or -1.
type Polarity int

const (
	Positive Polarity = 1
	Negative Polarity = -1
)

// badEmojis flip the polarity of the record they are attached to.
var badEmojis = map[string]struct{}{
	"👎": {},
	"😠": {},
}

// Entry is a single power score with its polarity.
type Entry struct {
	Power    float64
	Polarity Polarity
}

// PolarityOf returns Negative for denylisted emoji and Positive otherwise.
func PolarityOf(emoji *string) Polarity {
	if emoji == nil {
		return Positive
	}
	if _, ok := badEmojis[*emoji]; ok {
		return Negative
	}
	return Positive
}

// CountPow returns the length of the longest common leading run of
// characters between subject and pattern.
func CountPow(subject, pattern string) int {
	s, p := []rune(subject), []rune(pattern)
	n := 0
	for n < len(s) && n < len(p) && s[n] == p[n] {
		n++
	}
	return n
}

// Aggregate returns the mean of the signed power of entries, or 0 for none.
func Aggregate(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}

	var sum float64
	for _, e := range entries {
		sum += e.Power * float64(e.Polarity)
	}
	return sum / float64(len(entries))
}
