package store

import (
	"errors"
	"strings"
)

// Lane positions are stored as lexicographic ranks so moving one lane only
// rewrites that lane's row. Ranks are lowercase base36 strings.
const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	rankMin = 0
	rankMax = len(rankAlphabet) - 1
)

var errNoRankSpace = errors.New("no space between ranks")

func rankDigit(c byte) (int, bool) {
	i := strings.IndexByte(rankAlphabet, c)
	return i, i >= 0
}

func normRank(r string) string { return strings.ToLower(strings.TrimSpace(r)) }

// RankBetween returns a rank strictly between a and b. Either bound may be
// empty, meaning unbounded on that side.
func RankBetween(a, b string) (string, error) {
	a, b = normRank(a), normRank(b)
	if a != "" && b != "" && a >= b {
		return "", errors.New("RankBetween requires a < b")
	}
	inside := func(r string) bool {
		return r != "" && (a == "" || a < r) && (b == "" || r < b)
	}

	prefix := make([]byte, 0, 8)
	for i := 0; i < 256; i++ {
		lo, hi := rankMin, rankMax
		if i < len(a) {
			d, ok := rankDigit(a[i])
			if !ok {
				return "", errors.New("invalid rank character in a")
			}
			lo = d
		}
		if i < len(b) {
			d, ok := rankDigit(b[i])
			if !ok {
				return "", errors.New("invalid rank character in b")
			}
			hi = d
		}
		if lo == hi {
			prefix = append(prefix, rankAlphabet[lo])
			continue
		}
		if hi-lo > 1 {
			r := string(append(prefix, rankAlphabet[lo+(hi-lo)/2]))
			if !inside(r) {
				// b is a prefix extension of a ("y" < "y0").
				return "", errNoRankSpace
			}
			return r, nil
		}
		// Adjacent digits: any extension of a still sorts before b.
		if r := a + "0"; inside(r) {
			return r, nil
		}
		return "", errNoRankSpace
	}
	return "", errors.New("unable to compute rank between")
}

func RankAfter(a string) (string, error) { return RankBetween(a, "") }

// RankBetweenUnique is RankBetween skipping ranks already in existing (keys
// normalized with normRank).
func RankBetweenUnique(existing map[string]bool, lower, upper string) (string, error) {
	cur := normRank(lower)
	upper = normRank(upper)
	for i := 0; i < 256; i++ {
		r, err := RankBetween(cur, upper)
		if err != nil {
			return "", err
		}
		if !existing[r] {
			return r, nil
		}
		cur = r
	}
	return "", errors.New("unable to find unique rank")
}
