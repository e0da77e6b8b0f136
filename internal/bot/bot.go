// Package bot holds the strategies that make Flip 7 decisions: the
// profile-driven risk strategy and a few fixed baselines.
package bot

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/profile"
)

// ErrUnknownStrategy is returned by New for an unrecognised kind
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy kinds accepted by New
const (
	KindProfile   = "profile"
	KindThreshold = "threshold"
	KindManiac    = "maniac"
	KindTimid     = "timid"
)

// Kinds lists every strategy kind
func Kinds() []string {
	return []string{KindProfile, KindThreshold, KindManiac, KindTimid}
}

// New builds a strategy by kind. Profile strategies require p; the others
// ignore it.
func New(kind string, p *profile.Profile, rng *rand.Rand, logger *log.Logger) (game.Strategy, error) {
	logger = orDiscard(logger).WithPrefix("bot")

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindProfile, "":
		if p == nil {
			return nil, fmt.Errorf("%w: profile strategy requires a profile", ErrUnknownStrategy)
		}
		return NewProfileBot(p, rng, logger), nil
	case KindThreshold:
		return NewThresholdBot(rng, logger), nil
	case KindManiac:
		return NewManiacBot(logger), nil
	case KindTimid:
		return NewTimidBot(DefaultTimidCards, logger), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownStrategy, kind, strings.Join(Kinds(), ", "))
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
