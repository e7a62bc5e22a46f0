// Package browsertest provides an in-memory browser.Driver for tests.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"xbt/internal/browser"
	"xbt/internal/domain"
)

// Page describes what the fake browser shows for one URL
type Page struct {
	Title    string
	Elements map[browser.Locator]*Element
	// AppearAfter delays an element: it is reported missing for the first N lookups
	AppearAfter map[browser.Locator]int
}

// Element is a fake page element that records interactions
type Element struct {
	Text  string
	Value string
	// OnClick switches the driver to another URL, simulating a form submit
	OnClick string

	driver *Driver
	clicks int
}

// Clicks returns how often the element was clicked
func (e *Element) Clicks() int {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	return e.clicks
}

// Driver is a scripted, goroutine-safe browser.Driver
type Driver struct {
	ID    string
	Pages map[string]*Page
	// QuitErr is returned from every Quit call
	QuitErr error
	// FindErr, when set, is returned from FindElement instead of the normal lookup
	FindErr error

	mu      sync.Mutex
	current string
	lookups map[browser.Locator]int
	quits   int
	visited []string
}

// NewDriver returns a fake driver serving pages
func NewDriver(id string, pages map[string]*Page) *Driver {
	d := &Driver{ID: id, Pages: pages, lookups: make(map[browser.Locator]int)}
	for _, p := range pages {
		for _, el := range p.Elements {
			el.driver = d
		}
	}
	return d
}

func (d *Driver) SessionID() string { return d.ID }

func (d *Driver) Navigate(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Pages[url]; !ok {
		return fmt.Errorf("navigate to %s: unreachable", url)
	}
	d.current = url
	d.visited = append(d.visited, url)
	return nil
}

func (d *Driver) Title(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := d.Pages[d.current]; p != nil {
		return p.Title, nil
	}
	return "", nil
}

func (d *Driver) FindElement(_ context.Context, loc browser.Locator) (browser.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	p := d.Pages[d.current]
	if p == nil {
		return nil, fmt.Errorf("%s: %w", loc, domain.ErrElementNotFound)
	}
	d.lookups[loc]++
	if n := p.AppearAfter[loc]; d.lookups[loc] <= n {
		return nil, fmt.Errorf("%s: %w", loc, domain.ErrElementNotFound)
	}
	el, ok := p.Elements[loc]
	if !ok {
		return nil, fmt.Errorf("%s: %w", loc, domain.ErrElementNotFound)
	}
	return &handle{d: d, el: el}, nil
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quits++
	return d.QuitErr
}

// Quits returns how often Quit was called
func (d *Driver) Quits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quits
}

// Visited returns the navigated URLs in order
func (d *Driver) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// Lookups returns how often loc was searched for
func (d *Driver) Lookups(loc browser.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups[loc]
}

type handle struct {
	d  *Driver
	el *Element
}

func (h *handle) Clear(_ context.Context) error {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.el.Value = ""
	return nil
}

func (h *handle) SendKeys(_ context.Context, text string) error {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.el.Value += text
	return nil
}

func (h *handle) Click(_ context.Context) error {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.el.clicks++
	if h.el.OnClick != "" {
		h.d.current = h.el.OnClick
		h.d.visited = append(h.d.visited, h.el.OnClick)
	}
	return nil
}

func (h *handle) Text(_ context.Context) (string, error) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.el.Text, nil
}

// RundeckSite returns the pages of a working Rundeck login at root
func RundeckSite(root string) map[string]*Page {
	home := strings.TrimRight(root, "/") + "/menu/home"
	return map[string]*Page{
		root: {
			Title: "Rundeck - Login",
			Elements: map[browser.Locator]*Element{
				browser.ByName("j_username"):   {},
				browser.ByName("j_password"):   {},
				browser.ByClass("btn-primary"): {OnClick: home},
			},
		},
		home: {
			Title: "Rundeck - Projects",
			Elements: map[browser.Locator]*Element{
				browser.ByPartialLinkText("New Project"): {Text: " New Project\n"},
			},
		},
	}
}
