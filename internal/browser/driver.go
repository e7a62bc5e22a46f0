// Package browser is the DOM automation boundary. Scenarios talk to a Driver;
// adapters translate it onto a remote WebDriver session or a local Chrome.
package browser

import (
	"context"
	"fmt"
)

// LocatorKind is the strategy used to find an element
type LocatorKind string

const (
	KindName            LocatorKind = "name"
	KindClass           LocatorKind = "class"
	KindPartialLinkText LocatorKind = "partial link text"
)

// Locator finds a single element on the current page
type Locator struct {
	Kind  LocatorKind
	Value string
}

// ByName locates an element by its name attribute
func ByName(name string) Locator {
	return Locator{Kind: KindName, Value: name}
}

// ByClass locates an element by one of its CSS classes
func ByClass(class string) Locator {
	return Locator{Kind: KindClass, Value: class}
}

// ByPartialLinkText locates a link whose visible text contains text
func ByPartialLinkText(text string) Locator {
	return Locator{Kind: KindPartialLinkText, Value: text}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Kind, l.Value)
}

// Driver is a live browser session. It is owned by exactly one test context.
type Driver interface {
	// SessionID is the provider-assigned session identifier
	SessionID() string
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	// FindElement returns an error wrapping domain.ErrElementNotFound when nothing matches
	FindElement(ctx context.Context, loc Locator) (Element, error)
	// Quit terminates the session
	Quit() error
}

// Element is a handle to an element on the current page
type Element interface {
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	Click(ctx context.Context) error
	Text(ctx context.Context) (string, error)
}
