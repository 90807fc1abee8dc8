// Package screenshot renders post pages in a headless browser and stores the images in S3
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// defaultUserAgent is a regular desktop chrome user agent, post pages refuse headless defaults
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RendererParams for renderer creation
type RendererParams struct {
	Width      int
	Height     int
	Timeout    time.Duration
	Selector   string // element to capture
	ChromePath string // browser binary, looked up in PATH if empty
}

// Renderer captures a page element as png with headless chrome
type Renderer struct {
	width    int
	height   int
	timeout  time.Duration
	selector string
	execPath string
}

// NewRenderer makes a renderer
func NewRenderer(p RendererParams) *Renderer {
	if p.Width <= 0 {
		p.Width = 1200
	}
	if p.Height <= 0 {
		p.Height = 800
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	if p.Selector == "" {
		p.Selector = `article[data-testid="tweet"]`
	}
	return &Renderer{width: p.Width, height: p.Height, timeout: p.Timeout, selector: p.Selector, execPath: p.ChromePath}
}

// Capture opens url in a fresh browser and returns a png of the first element matching the selector
func (r *Renderer) Capture(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("empty url")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.options()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, r.timeout)
	defer timeoutCancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(r.selector, chromedp.ByQuery),
		chromedp.Screenshot(r.selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("capture %s: empty image", url)
	}
	return buf, nil
}

func (r *Renderer) options() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.UserAgent(defaultUserAgent),
		chromedp.WindowSize(r.width, r.height),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	return opts
}
