package discord

import (
	"strings"
	"unicode/utf8"
)

// Discord corta los mensajes en 2000 caracteres.
const messageLimit = 2000

const fence = "```"

// SplitCodeBlocks parte el texto en bloques de código que entran en limit.
// Corta por línea; una línea que no entra sola se parte por runas.
func SplitCodeBlocks(text string, limit int) []string {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	budget := limit - 2*(len(fence)+1)
	if budget < 1 {
		budget = 1
	}

	var out, cur []string
	curLen := 0
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, fence+"\n"+strings.Join(cur, "\n")+"\n"+fence)
		cur, curLen = nil, 0
	}

	for _, line := range strings.Split(text, "\n") {
		for _, part := range splitRunes(line, budget) {
			n := utf8.RuneCountInString(part)
			extra := n
			if len(cur) > 0 {
				extra++
			}
			if curLen+extra > budget {
				flush()
				extra = n
			}
			cur = append(cur, part)
			curLen += extra
		}
	}
	flush()
	return out
}

func splitRunes(s string, n int) []string {
	if utf8.RuneCountInString(s) <= n {
		return []string{s}
	}
	var out []string
	r := []rune(s)
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
