package metrics

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the BPE used for prompt estimates. Provider models are not all OpenAI models,
// so counts are an approximation used for logging only.
const DefaultEncoding = "cl100k_base"

var offlineLoader sync.Once

// useOfflineBPE makes tiktoken read the ranks compiled into the binary instead of fetching them.
func useOfflineBPE() {
	offlineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
}

// TokenCounter estimates prompt sizes before they are sent upstream. It never touches the network.
type TokenCounter struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTokenCounter loads the encoding up front. When it cannot be loaded the counter falls back to
// a character based heuristic.
func NewTokenCounter(logger *slog.Logger) *TokenCounter {
	return newTokenCounter(DefaultEncoding, logger.With("component", "metrics.tokens"))
}

func newTokenCounter(encoding string, logger *slog.Logger) *TokenCounter {
	useOfflineBPE()
	c := &TokenCounter{encoding: encoding}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Warn("tiktoken encoding unavailable, using heuristic", "encoding", encoding, "error", err)
		return c
	}
	c.enc = enc
	return c
}

// Count returns the token estimate for text.
func (c *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.enc == nil {
		return EstimateTokens(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// EstimateTokens approximates token count as one token per four characters.
func EstimateTokens(text string) int {
	runes := utf8.RuneCountInString(text)
	if runes == 0 {
		return 0
	}
	return (runes + 3) / 4
}
