// Package ratelimit provides fixed-window per-client rate limiting for the
// HTTP surface. Generation-backed routes get a tighter budget than reads.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule is a request budget for all paths under a prefix.
type Rule struct {
	PathPrefix string
	Limit      int
	Window     time.Duration
}

// DefaultRules throttle the LLM-backed endpoints harder than the rest.
func DefaultRules() []Rule {
	return []Rule{
		{PathPrefix: "/next", Limit: 30, Window: time.Minute},
		{PathPrefix: "/response", Limit: 30, Window: time.Minute},
		{PathPrefix: "/upload", Limit: 10, Window: time.Minute},
		{PathPrefix: "/", Limit: 120, Window: time.Minute},
	}
}

// Info describes the limit state returned with every decision.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type window struct {
	count int
	reset time.Time
}

// Limiter tracks fixed windows per client and rule.
type Limiter struct {
	mu      sync.Mutex
	rules   []Rule
	windows map[string]*window
	stop    chan struct{}
}

// NewLimiter creates a limiter and starts its cleanup loop.
func NewLimiter(rules []Rule) *Limiter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	l := &Limiter{
		rules:   rules,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may make this request now.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	rule := l.match(path)
	now := time.Now()
	key := clientID + "|" + rule.PathPrefix

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.reset) {
		w = &window{reset: now.Add(rule.Window)}
		l.windows[key] = w
	}

	info := Info{Limit: rule.Limit, ResetTime: w.reset}
	if w.count >= rule.Limit {
		info.Remaining = 0
		info.RetryAfter = time.Until(w.reset)
		return false, info
	}

	w.count++
	info.Remaining = rule.Limit - w.count
	return true, info
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) match(path string) Rule {
	for _, rule := range l.rules {
		if strings.HasPrefix(path, rule.PathPrefix) {
			return rule
		}
	}
	// Unreachable with the default trailing "/" rule; a safe fallback for
	// custom rule sets.
	return Rule{PathPrefix: "/", Limit: 120, Window: time.Minute}
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, w := range l.windows {
				if now.After(w.reset) {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
