package category

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pak-index/core/materialize"
	"pak-index/core/metrics"

	"go.uber.org/zap"
)

// ErrUnknownCategory is returned when a caller asks for a category that is not in the rule table.
var ErrUnknownCategory = errors.New("unknown category")

// Classifier assigns newly indexed files to category buckets.
type Classifier struct {
	rules        []Rule
	threshold    int
	materializer *materialize.Materializer
	logger       *zap.Logger
	metrics      *metrics.Metrics

	mu      sync.RWMutex
	matched map[string]int
	pending map[string][]string
	buckets map[string]*Bucket
}

// New validates rules and creates a classifier. A threshold <= 0 selects DefaultThreshold
// for rules that do not set their own.
func New(rules []Rule, threshold int, m *materialize.Materializer, logger *zap.Logger, mt *metrics.Metrics) (*Classifier, error) {
	if err := validate(rules); err != nil {
		return nil, fmt.Errorf("invalid category table: %w", err)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		rules:        append([]Rule(nil), rules...),
		threshold:    threshold,
		materializer: m,
		logger:       logger,
		metrics:      mt,
		matched:      make(map[string]int),
		pending:      make(map[string][]string),
		buckets:      make(map[string]*Bucket),
	}, nil
}

// Classify evaluates every rule against paths, which must be newly claimed files.
// Records that fail to decode are skipped; they never abort the batch.
func (c *Classifier) Classify(ctx context.Context, paths []string) {
	for _, rule := range c.rules {
		var matches []string
		for _, p := range paths {
			if rule.Matches(p) {
				matches = append(matches, p)
			}
		}
		if len(matches) == 0 {
			continue
		}

		bucket, toFill := c.admit(rule, matches)
		if bucket == nil {
			continue
		}

		for _, p := range toFill {
			c.fill(ctx, bucket, rule, p)
		}
	}
}

// admit records matches for rule and returns the bucket plus the paths to
// materialize, or a nil bucket while the category is still under its threshold.
func (c *Classifier) admit(rule Rule, matches []string) (*Bucket, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.matched[rule.Name] += len(matches)
	if b, ok := c.buckets[rule.Name]; ok {
		return b, matches
	}

	c.pending[rule.Name] = append(c.pending[rule.Name], matches...)
	limit := rule.threshold(c.threshold)
	if c.matched[rule.Name] <= limit {
		c.logger.Debug("Category below threshold",
			zap.String("category", rule.Name),
			zap.Int("matched", c.matched[rule.Name]),
			zap.Int("threshold", limit),
		)
		return nil, nil
	}

	b := newBucket(rule.Name)
	c.buckets[rule.Name] = b
	toFill := c.pending[rule.Name]
	delete(c.pending, rule.Name)
	c.metrics.BucketCreated()

	c.logger.Info("Category materialized",
		zap.String("category", rule.Name),
		zap.Int("files", len(toFill)),
	)
	return b, toFill
}

func (c *Classifier) fill(ctx context.Context, b *Bucket, rule Rule, p string) {
	record, err := c.materializer.Materialize(ctx, p)
	if err != nil {
		c.logger.Warn("Skipping unreadable file",
			zap.String("category", rule.Name),
			zap.String("path", p),
			zap.Error(err),
		)
		return
	}

	key := rule.Key(p)
	if !b.put(key, record) {
		c.logger.Debug("Duplicate bucket key ignored",
			zap.String("category", rule.Name),
			zap.String("key", key),
			zap.String("path", p),
		)
	}
}

// Bucket returns the bucket of a category. It returns ErrUnknownCategory for
// names missing from the rule table and a nil bucket for categories that have
// not crossed their threshold yet.
func (c *Classifier) Bucket(name string) (*Bucket, error) {
	if !c.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buckets[name], nil
}

// Has reports whether name is a configured category.
func (c *Classifier) Has(name string) bool {
	for _, r := range c.rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Rules returns a copy of the rule table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Summary describes the state of one category.
type Summary struct {
	Name         string `json:"name"`
	Matched      int    `json:"matched"`
	Threshold    int    `json:"threshold"`
	Materialized bool   `json:"materialized"`
	Records      int    `json:"records"`
}

// Summaries reports every configured category in table order.
func (c *Classifier) Summaries() []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Summary, 0, len(c.rules))
	for _, r := range c.rules {
		b := c.buckets[r.Name]
		out = append(out, Summary{
			Name:         r.Name,
			Matched:      c.matched[r.Name],
			Threshold:    r.threshold(c.threshold),
			Materialized: b != nil,
			Records:      b.Len(),
		})
	}
	return out
}
