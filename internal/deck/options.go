// Package deck provides the scheduling options of a collection.
package deck

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/at-ishikawa/cardsched/internal/config"
	"github.com/at-ishikawa/cardsched/internal/fact"
)

var ErrInvalidOption = errors.New("invalid deck option")

// NewCardOrder decides which new cards are introduced first.
type NewCardOrder int

const (
	NewCardsRandom NewCardOrder = iota
	NewCardsOldFirst
	NewCardsNewFirst
)

var newCardOrderNames = []string{"random", "old_first", "new_first"}

// SQL returns the ORDER BY clause of the new card queue.
func (o NewCardOrder) SQL() string {
	if o == NewCardsNewFirst {
		return "due DESC"
	}
	return "due"
}

func (o NewCardOrder) String() string {
	return enumName(newCardOrderNames, int(o))
}

// NewCardSpacing decides how new cards are mixed with reviews.
type NewCardSpacing int

const (
	NewCardsDistribute NewCardSpacing = iota
	NewCardsLast
	NewCardsFirst
)

var newCardSpacingNames = []string{"distribute", "last", "first"}

func (s NewCardSpacing) String() string {
	return enumName(newCardSpacingNames, int(s))
}

// ReviewCardOrder decides which due reviews are shown first.
type ReviewCardOrder int

const (
	ReviewsOldFirst ReviewCardOrder = iota
	ReviewsNewFirst
	ReviewsDueFirst
	ReviewsRandom
)

var reviewCardOrderNames = []string{"old_first", "new_first", "due_first", "random"}

// SQL returns the ORDER BY clause of the review queue.
func (o ReviewCardOrder) SQL() string {
	switch o {
	case ReviewsNewFirst:
		return "`interval`"
	case ReviewsDueFirst:
		return "due"
	case ReviewsRandom:
		return "fact_id, ordinal"
	default:
		return "`interval` DESC"
	}
}

func (o ReviewCardOrder) String() string {
	return enumName(reviewCardOrderNames, int(o))
}

// Options are the scheduling options. Durations are seconds and intervals are days.
type Options struct {
	PerDay          bool
	NewCardsPerDay  int
	NewCardOrder    NewCardOrder
	NewCardSpacing  NewCardSpacing
	ReviewCardOrder ReviewCardOrder
	// LeechFails is nil when leech detection is disabled.
	LeechFails      *int
	SuspendLeeches  bool
	Delay0          float64
	Delay1          float64
	Delay2          float64
	HardIntervalMin float64
	HardIntervalMax float64
	MidIntervalMin  float64
	MidIntervalMax  float64
	EasyIntervalMin float64
	EasyIntervalMax float64
	UTCOffset       int
	Location        *time.Location
	QueueLimit      int
	NewSpacing      float64
	RevSpacing      float64
	CollapseTime    float64
	FailedCardMax   int
	// SpacedCacheRatio bounds the spaced new card cache to QueueLimit times this ratio.
	SpacedCacheRatio int

	NewActive   []string
	NewInactive []string
	RevActive   []string
	RevInactive []string
}

// LeechThreshold returns the failure count that marks a leech, and false when disabled.
func (o Options) LeechThreshold() (int, bool) {
	if o.LeechFails == nil {
		return 0, false
	}
	return *o.LeechFails, true
}

// NewOptions converts the validated configuration into options.
func NewOptions(cfg config.DeckConfig) (Options, error) {
	opts := Options{
		PerDay:           cfg.PerDay,
		NewCardsPerDay:   cfg.NewCardsPerDay,
		SuspendLeeches:   cfg.SuspendLeeches,
		Delay0:           float64(cfg.Delay0),
		Delay1:           float64(cfg.Delay1),
		Delay2:           cfg.Delay2,
		HardIntervalMin:  cfg.HardIntervalMin,
		HardIntervalMax:  cfg.HardIntervalMax,
		MidIntervalMin:   cfg.MidIntervalMin,
		MidIntervalMax:   cfg.MidIntervalMax,
		EasyIntervalMin:  cfg.EasyIntervalMin,
		EasyIntervalMax:  cfg.EasyIntervalMax,
		UTCOffset:        cfg.UTCOffset,
		QueueLimit:       cfg.QueueLimit,
		NewSpacing:       cfg.NewSpacing,
		RevSpacing:       cfg.RevSpacing,
		CollapseTime:     float64(cfg.CollapseTime),
		FailedCardMax:    cfg.FailedCardMax,
		SpacedCacheRatio: cfg.SpacedCacheRatio,
	}
	if cfg.LeechFails != nil {
		fails := *cfg.LeechFails
		opts.LeechFails = &fails
	}

	setters := []struct {
		key   string
		value string
	}{
		{"newCardOrder", cfg.NewCardOrder},
		{"newCardSpacing", cfg.NewCardSpacing},
		{"revCardOrder", cfg.ReviewCardOrder},
	}
	for _, s := range setters {
		if err := varSetters[s.key](&opts, s.value); err != nil {
			return Options{}, fmt.Errorf("%w: %s: %w", ErrInvalidOption, s.key, err)
		}
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return Options{}, fmt.Errorf("%w: timezone: %w", ErrInvalidOption, err)
	}
	opts.Location = loc
	return opts, nil
}

// VarSource reads the per collection overrides.
type VarSource interface {
	DeckVars(ctx context.Context) (map[string]string, error)
}

// Load builds the options from cfg and the overrides stored in the collection.
func Load(ctx context.Context, src VarSource, cfg config.DeckConfig) (Options, error) {
	opts, err := NewOptions(cfg)
	if err != nil {
		return Options{}, err
	}
	vars, err := src.DeckVars(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("src.DeckVars() > %w", err)
	}
	if err := opts.Apply(vars); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Apply overrides options from deck variables. Unknown names are ignored;
// a value that cannot be parsed is an error since it would silently change review timing.
func (o *Options) Apply(vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		set, ok := varSetters[key]
		if !ok {
			continue
		}
		if err := set(o, vars[key]); err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidOption, key, vars[key], err)
		}
	}
	return nil
}

// IsVar reports whether name is a deck variable Apply understands.
func IsVar(name string) bool {
	_, ok := varSetters[name]
	return ok
}

var varSetters = map[string]func(*Options, string) error{
	"perDay":         boolVar(func(o *Options) *bool { return &o.PerDay }),
	"suspendLeeches": boolVar(func(o *Options) *bool { return &o.SuspendLeeches }),
	"newCardsPerDay": intVar(func(o *Options) *int { return &o.NewCardsPerDay }),
	"utcOffset":      intVar(func(o *Options) *int { return &o.UTCOffset }),
	"queueLimit": func(o *Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("must be at least 1")
		}
		o.QueueLimit = n
		return nil
	},
	"failedCardMax": intVar(func(o *Options) *int { return &o.FailedCardMax }),
	"leechFails": func(o *Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		o.LeechFails = &n
		return nil
	},
	"delay0":          floatVar(func(o *Options) *float64 { return &o.Delay0 }),
	"delay1":          floatVar(func(o *Options) *float64 { return &o.Delay1 }),
	"delay2":          floatVar(func(o *Options) *float64 { return &o.Delay2 }),
	"hardIntervalMin": floatVar(func(o *Options) *float64 { return &o.HardIntervalMin }),
	"hardIntervalMax": floatVar(func(o *Options) *float64 { return &o.HardIntervalMax }),
	"midIntervalMin":  floatVar(func(o *Options) *float64 { return &o.MidIntervalMin }),
	"midIntervalMax":  floatVar(func(o *Options) *float64 { return &o.MidIntervalMax }),
	"easyIntervalMin": floatVar(func(o *Options) *float64 { return &o.EasyIntervalMin }),
	"easyIntervalMax": floatVar(func(o *Options) *float64 { return &o.EasyIntervalMax }),
	"newSpacing":      floatVar(func(o *Options) *float64 { return &o.NewSpacing }),
	"revSpacing":      floatVar(func(o *Options) *float64 { return &o.RevSpacing }),
	"collapseTime":    floatVar(func(o *Options) *float64 { return &o.CollapseTime }),
	"newCardOrder": func(o *Options, v string) error {
		n, err := parseEnum(newCardOrderNames, v)
		o.NewCardOrder = NewCardOrder(n)
		return err
	},
	"newCardSpacing": func(o *Options, v string) error {
		n, err := parseEnum(newCardSpacingNames, v)
		o.NewCardSpacing = NewCardSpacing(n)
		return err
	},
	"revCardOrder": func(o *Options, v string) error {
		n, err := parseEnum(reviewCardOrderNames, v)
		o.ReviewCardOrder = ReviewCardOrder(n)
		return err
	},
	"newActive":   tagsVar(func(o *Options) *[]string { return &o.NewActive }),
	"newInactive": tagsVar(func(o *Options) *[]string { return &o.NewInactive }),
	"revActive":   tagsVar(func(o *Options) *[]string { return &o.RevActive }),
	"revInactive": tagsVar(func(o *Options) *[]string { return &o.RevInactive }),
}

func boolVar(field func(*Options) *bool) func(*Options, string) error {
	return func(o *Options, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(o) = b
		return nil
	}
}

func intVar(field func(*Options) *int) func(*Options, string) error {
	return func(o *Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func floatVar(field func(*Options) *float64) func(*Options, string) error {
	return func(o *Options, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(o) = f
		return nil
	}
}

func tagsVar(field func(*Options) *[]string) func(*Options, string) error {
	return func(o *Options, v string) error {
		*field(o) = fact.ParseTags(v)
		return nil
	}
}

// parseEnum accepts either the option name or its legacy numeric code.
func parseEnum(names []string, v string) (int, error) {
	if i := slices.Index(names, v); i >= 0 {
		return i, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n >= len(names) {
		return 0, fmt.Errorf("must be one of %v", names)
	}
	return n, nil
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return strconv.Itoa(i)
	}
	return names[i]
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
