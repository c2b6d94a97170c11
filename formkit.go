// Package formkit wires the form affordances of an HTML document in one call:
// phone masking, date bounds, submit-time validation and the card reveal
// animation. Hosts parse a page into a dom.Document, call Init, drive events
// through the document and Close the handle when the page goes away.
package formkit

import (
	"errors"
	"time"

	"github.com/goliatone/go-formkit/pkg/dates"
	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/mask"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/visibility"
)

// ErrNilDocument is returned by Init when no document is supplied.
var ErrNilDocument = errors.New("formkit: document is nil")

// Issue aliases validation.Issue for callers reporting failures.
type Issue = validation.Issue

// Result aliases validation.Result.
type Result = validation.Result

// Entry aliases visibility.Entry so hosts can push intersection updates
// without importing the visibility package.
type Entry = visibility.Entry

type config struct {
	clock        func() time.Time
	location     *time.Location
	locale       string
	translator   i18n.Translator
	validator    []validation.Option
	threshold    float64
	animations   bool
	hasThreshold bool
}

// Option customises Init.
type Option func(*config)

// WithClock overrides the clock used to compute today's date.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLocation sets the timezone today's date is computed in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithLocale selects the message locale. Defaults to pt-BR.
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithTranslator replaces the embedded message catalog.
func WithTranslator(t i18n.Translator) Option {
	return func(c *config) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithValidatorOptions forwards options to validation.New. They are applied
// after the locale and translator options, so an explicit
// validation.WithLocalizer wins.
func WithValidatorOptions(opts ...validation.Option) Option {
	return func(c *config) {
		c.validator = append(c.validator, opts...)
	}
}

// WithRevealThreshold overrides the visible fraction required to reveal a
// card.
func WithRevealThreshold(threshold float64) Option {
	return func(c *config) {
		c.threshold = threshold
		c.hasThreshold = true
	}
}

// WithoutAnimations skips the card reveal setup; cards keep their styles.
func WithoutAnimations() Option {
	return func(c *config) {
		c.animations = false
	}
}

// Handle owns the listeners installed by Init.
type Handle struct {
	doc       *dom.Document
	validator *validation.Validator
	tracker   *visibility.Tracker
	disposers []func()
	closed    bool
}

// Init enhances doc: phone inputs are masked, future-only date inputs get
// today as their minimum, start/end date pairs are kept ordered, opted-in
// forms are validated on submit and card elements are hidden until revealed.
// Elements added to doc afterwards are not covered.
func Init(doc *dom.Document, opts ...Option) (*Handle, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	cfg := config{
		clock:      time.Now,
		location:   time.UTC,
		locale:     i18n.DefaultLocale,
		animations: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	localizer := i18n.NewLocalizer(cfg.locale)
	if cfg.translator != nil {
		localizer.Translator = cfg.translator
	}
	validatorOpts := append([]validation.Option{validation.WithLocalizer(localizer)}, cfg.validator...)

	h := &Handle{
		doc:       doc,
		validator: validation.New(validatorOpts...),
	}

	h.disposers = append(h.disposers, mask.Bind(doc, mask.WithLocalizer(localizer))...)
	dates.ApplyFutureOnly(doc, dates.Today(cfg.clock(), cfg.location))
	h.disposers = append(h.disposers, dates.BindRanges(doc)...)
	h.disposers = append(h.disposers, validation.Bind(doc, h.validator)...)

	if cfg.animations {
		var trackerOpts []visibility.Option
		if cfg.hasThreshold {
			trackerOpts = append(trackerOpts, visibility.WithThreshold(cfg.threshold))
		}
		h.tracker = visibility.NewTracker(trackerOpts...)
		visibility.Bind(doc, h.tracker)
	}

	return h, nil
}

// Document returns the enhanced document.
func (h *Handle) Document() *dom.Document {
	return h.doc
}

// Validator returns the validator bound to the document's forms.
func (h *Handle) Validator() *validation.Validator {
	return h.validator
}

// Tracker returns the reveal tracker, or nil when animations are disabled.
func (h *Handle) Tracker() *visibility.Tracker {
	return h.tracker
}

// Reveal forwards intersection entries to the tracker and returns the
// elements revealed.
func (h *Handle) Reveal(entries ...Entry) []dom.Element {
	if h.closed || h.tracker == nil {
		return nil
	}
	return h.tracker.Notify(entries...)
}

// Close removes every listener and stops tracking cards. Calling it more than
// once is a no-op.
func (h *Handle) Close() {
	if h == nil || h.closed {
		return
	}
	h.closed = true
	for _, dispose := range h.disposers {
		dispose()
	}
	h.disposers = nil
	if h.tracker != nil {
		h.tracker.Disconnect()
	}
}
