package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"xbt/internal/domain"
)

const noSuchElement = "no such element"

// SeleniumDriver adapts a tebeka/selenium WebDriver session
type SeleniumDriver struct {
	wd selenium.WebDriver
}

// NewSeleniumDriver wraps an already connected WebDriver
func NewSeleniumDriver(wd selenium.WebDriver) *SeleniumDriver {
	return &SeleniumDriver{wd: wd}
}

func (d *SeleniumDriver) SessionID() string {
	return d.wd.SessionID()
}

func (d *SeleniumDriver) Navigate(_ context.Context, url string) error {
	if err := d.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *SeleniumDriver) Title(_ context.Context) (string, error) {
	title, err := d.wd.Title()
	if err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}

func (d *SeleniumDriver) FindElement(_ context.Context, loc Locator) (Element, error) {
	by, err := seleniumBy(loc.Kind)
	if err != nil {
		return nil, err
	}
	el, err := d.wd.FindElement(by, loc.Value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, fmt.Errorf("%s: %w", loc, domain.ErrElementNotFound)
		}
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return &seleniumElement{el: el}, nil
}

func (d *SeleniumDriver) Quit() error {
	return d.wd.Quit()
}

func seleniumBy(kind LocatorKind) (string, error) {
	switch kind {
	case KindName:
		return selenium.ByName, nil
	case KindClass:
		return selenium.ByClassName, nil
	case KindPartialLinkText:
		return selenium.ByPartialLinkText, nil
	default:
		return "", fmt.Errorf("unsupported locator kind %q", kind)
	}
}

// isNoSuchElement recognises both W3C and legacy JSON wire "no such element" replies
func isNoSuchElement(err error) bool {
	var serr *selenium.Error
	if errors.As(err, &serr) {
		return serr.Err == noSuchElement || serr.LegacyCode == 7
	}
	return strings.Contains(err.Error(), noSuchElement)
}

type seleniumElement struct {
	el selenium.WebElement
}

func (e *seleniumElement) Clear(_ context.Context) error {
	return e.el.Clear()
}

func (e *seleniumElement) SendKeys(_ context.Context, text string) error {
	return e.el.SendKeys(text)
}

func (e *seleniumElement) Click(_ context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) Text(_ context.Context) (string, error) {
	return e.el.Text()
}
