// Package browser wraps chromedp behind the small session surface the
// acquisition strategies need: navigate with a load condition, wait for a
// selector, read markup, take a diagnostic screenshot, tear down.
package browser

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"liontalk/seminarworker/logger"
)

// Launcher owns the shared Chrome exec allocator. Individual page sessions
// are created per acquisition and must be closed by the caller on every exit
// path.
type Launcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	navTimeout  time.Duration
	waitTimeout time.Duration
	log         *logger.Logger
}

// NewLauncher creates the shared allocator. Chrome itself is only started
// when the first session runs.
func NewLauncher(ctx context.Context, headless bool, navTimeout, waitTimeout time.Duration) *Launcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)

	return &Launcher{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		navTimeout:  navTimeout,
		waitTimeout: waitTimeout,
		log:         logger.ForBrowser(),
	}
}

// Close tears down the allocator and any remaining browser processes.
func (l *Launcher) Close() {
	l.allocCancel()
}

// NewPage opens a fresh browser context for one acquisition.
func (l *Launcher) NewPage(ctx context.Context) (*Session, error) {
	browserCtx, cancel := chromedp.NewContext(l.allocCtx)

	// Start the browser eagerly so a launch failure surfaces here rather
	// than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, err
	}

	return &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		navTimeout:  l.navTimeout,
		waitTimeout: l.waitTimeout,
		log:         l.log,
	}, nil
}

// Session is one exclusively-owned browser page.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	navTimeout  time.Duration
	waitTimeout time.Duration
	log         *logger.Logger
}

// Navigate loads the URL and waits for the document body to be ready, bounded
// by the navigation timeout.
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	s.log.Debug().Str("url", url).Msg("navigating")
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// WaitReady blocks until the selector is attached, bounded by the wait
// timeout.
func (s *Session) WaitReady(selector string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer cancel()

	return chromedp.Run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// InnerHTML returns the inner markup of the first node matching the selector.
func (s *Session) InnerHTML(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx, chromedp.InnerHTML(selector, &html, chromedp.ByQuery))
	return html, err
}

// Content returns the full rendered page markup.
func (s *Session) Content() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Screenshot captures the current viewport to path. Diagnostic only; callers
// ignore the error beyond logging.
func (s *Session) Screenshot(path string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Close releases the browser context. Safe to call on every exit path.
func (s *Session) Close() {
	s.cancel()
}
