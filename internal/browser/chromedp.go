package browser

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"xbt/internal/domain"
)

// ChromeDriver drives a local headless Chrome through the DevTools protocol
type ChromeDriver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	sessionID   string
}

// StartChrome launches a headless Chrome. The returned driver owns the browser
// process until Quit is called.
func StartChrome(ctx context.Context, execPath string) (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	// The browser must outlive the provisioning call, so it is not tied to ctx
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser and opens the first tab
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	sessionID := ""
	if c := chromedp.FromContext(browserCtx); c != nil && c.Target != nil {
		sessionID = string(c.Target.TargetID)
	}

	return &ChromeDriver{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		sessionID:   sessionID,
	}, nil
}

func (d *ChromeDriver) SessionID() string {
	return d.sessionID
}

func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	if err := d.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *ChromeDriver) Title(ctx context.Context) (string, error) {
	var title string
	if err := d.run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}

func (d *ChromeDriver) FindElement(ctx context.Context, loc Locator) (Element, error) {
	sel, by, err := chromeSelector(loc)
	if err != nil {
		return nil, err
	}

	var nodes []*cdp.Node
	if err := d.run(ctx, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", loc, domain.ErrElementNotFound)
	}
	return &chromeElement{driver: d, ids: []cdp.NodeID{nodes[0].NodeID}}, nil
}

func (d *ChromeDriver) Quit() error {
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.allocCancel()
	return err
}

// run executes actions on the browser context while honouring cancellation of ctx
func (d *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func chromeSelector(loc Locator) (string, chromedp.QueryOption, error) {
	switch loc.Kind {
	case KindName:
		return "[name=" + strconv.Quote(loc.Value) + "]", chromedp.ByQuery, nil
	case KindClass:
		return "." + loc.Value, chromedp.ByQuery, nil
	case KindPartialLinkText:
		return "//a[contains(normalize-space(.), " + strconv.Quote(loc.Value) + ")]", chromedp.BySearch, nil
	default:
		return "", nil, fmt.Errorf("unsupported locator kind %q", loc.Kind)
	}
}

type chromeElement struct {
	driver *ChromeDriver
	ids    []cdp.NodeID
}

func (e *chromeElement) Clear(ctx context.Context) error {
	return e.driver.run(ctx, chromedp.Clear(e.ids, chromedp.ByNodeID))
}

func (e *chromeElement) SendKeys(ctx context.Context, text string) error {
	return e.driver.run(ctx, chromedp.SendKeys(e.ids, text, chromedp.ByNodeID))
}

func (e *chromeElement) Click(ctx context.Context) error {
	return e.driver.run(ctx, chromedp.Click(e.ids, chromedp.ByNodeID))
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.driver.run(ctx, chromedp.Text(e.ids, &text, chromedp.ByNodeID)); err != nil {
		return "", err
	}
	return text, nil
}
