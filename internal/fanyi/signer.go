package fanyi

import (
	"strconv"
	"strings"
)

// Signer computes the sign form field from the query text and the gtk seed.
type Signer interface {
	Sign(text, seed string) string
}

// SignerFunc adapts a plain function to Signer.
type SignerFunc func(text, seed string) string

func (f SignerFunc) Sign(text, seed string) string {
	return f(text, seed)
}

// GTKSigner reproduces the signing routine of the Baidu web client.
type GTKSigner struct{}

const (
	foldOps   = "+-a^+6"
	finishOps = "+-3^+b+-f"
)

func (GTKSigner) Sign(text, seed string) string {
	m, s := splitSeed(seed)

	p := m
	for _, b := range []byte(truncateForSign(text)) {
		p += int64(b)
		p = mix(p, foldOps)
	}
	p = mix(p, finishOps)
	p = int64(int32(uint32(p) ^ uint32(s)))
	if p < 0 {
		p = (p & 2147483647) + 2147483648
	}
	p %= 1000000

	return strconv.FormatInt(p, 10) + "." + strconv.FormatInt(int64(int32(uint32(p)^uint32(m))), 10)
}

// truncateForSign keeps the first, middle and last ten code points of texts
// longer than thirty code points.
func truncateForSign(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n <= 30 {
		return text
	}
	mid := n / 2
	var b strings.Builder
	b.WriteString(string(runes[:10]))
	b.WriteString(string(runes[mid-5 : mid+5]))
	b.WriteString(string(runes[n-10:]))
	return b.String()
}

func splitSeed(seed string) (int64, int64) {
	first, second, _ := strings.Cut(strings.TrimSpace(seed), ".")
	m, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		m = 0
	}
	s, err := strconv.ParseInt(second, 10, 64)
	if err != nil {
		s = 0
	}
	return m, s
}

// mix applies the three-character operation groups of ops to r using 32-bit
// integer semantics.
func mix(r int64, ops string) int64 {
	for t := 0; t < len(ops)-2; t += 3 {
		c := ops[t+2]
		var a int64
		if c >= 'a' {
			a = int64(c) - 87
		} else {
			a = int64(c - '0')
		}
		if ops[t+1] == '+' {
			a = int64(uint32(r) >> uint(a))
		} else {
			a = int64(int32(uint32(r) << uint(a)))
		}
		if ops[t] == '+' {
			r = int64(int32(uint32(r + a)))
		} else {
			r = int64(int32(uint32(r) ^ uint32(a)))
		}
	}
	return r
}
