package bip39

import "github.com/tyler-smith/go-bip39/wordlists"

// wordlist is the fixed 2048-word BIP39 English list.
var wordlist = wordlists.English

// maxTokenLen is the longest token Check will accept before treating
// it as corruption rather than an unknown word. Every BIP39 English
// word is 8 characters or fewer, sized here like a fixed-size stack
// buffer on a constrained host (9 usable characters plus a terminator)
// would be. Supporting another BIP39 wordlist means raising this
// bound.
const maxTokenLen = 9

var wordIndex map[string]int

func init() {
	wordIndex = make(map[string]int, len(wordlist))
	for i, w := range wordlist {
		wordIndex[w] = i
	}
}
