// Package focusable computes the ordered set of elements inside a subtree
// that can receive keyboard focus.
package focusable

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
)

// defaultSelectors is the eligibility predicate. Any match qualifies.
var defaultSelectors = [...]string{
	"a[href]",
	"area[href]",
	"input:not([disabled])",
	"select:not([disabled])",
	"textarea:not([disabled])",
	"button:not([disabled])",
	"iframe",
	"object",
	"embed",
	`[tabindex]:not([tabindex="-1"])`,
	"[contenteditable]",
}

var defaultResolver = mustCompile(defaultSelectors[:])

// DefaultSelectors returns a copy of the default eligibility selectors.
func DefaultSelectors() []string {
	return append([]string(nil), defaultSelectors[:]...)
}

// Resolver matches focusable elements against a fixed selector group.
// A Resolver is immutable after construction and safe to share.
type Resolver struct {
	selectors []string
	matcher   cascadia.SelectorGroup
}

// New compiles a resolver from CSS selectors. With no selectors the
// default predicate is used.
func New(selectors ...string) (*Resolver, error) {
	if len(selectors) == 0 {
		return defaultResolver, nil
	}
	return compile(selectors)
}

// Default returns the resolver for the default predicate.
func Default() *Resolver {
	return defaultResolver
}

func compile(selectors []string) (*Resolver, error) {
	group := make(cascadia.SelectorGroup, 0, len(selectors))
	for i, s := range selectors {
		sel, err := cascadia.ParseGroup(s)
		if err != nil {
			return nil, ftErrors.Wrap(err, ftErrors.ErrCodeSelectorInvalid, "compile focusable selector").
				WithContext("selector", s).
				WithContext("index", i)
		}
		group = append(group, sel...)
	}
	return &Resolver{
		selectors: append([]string(nil), selectors...),
		matcher:   group,
	}, nil
}

func mustCompile(selectors []string) *Resolver {
	r, err := compile(selectors)
	if err != nil {
		panic(err)
	}
	return r
}

// Selectors returns a copy of the resolver's selectors.
func (r *Resolver) Selectors() []string {
	return append([]string(nil), r.selectors...)
}

// Resolve returns the focusable descendants of container in document
// order. The container itself is never included. A nil container yields
// an empty result. The slice is a snapshot; call again after mutations.
func (r *Resolver) Resolve(container *html.Node) []*html.Node {
	if r == nil || container == nil {
		return nil
	}
	return cascadia.QueryAll(container, r.matcher)
}

// Matches reports whether n alone satisfies the predicate.
func (r *Resolver) Matches(n *html.Node) bool {
	if r == nil || n == nil || n.Type != html.ElementNode {
		return false
	}
	return r.matcher.Match(n)
}

// Resolve applies the default predicate to container.
func Resolve(container *html.Node) []*html.Node {
	return defaultResolver.Resolve(container)
}
