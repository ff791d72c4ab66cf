package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// session is one isolated browser process. Sessions are never shared between
// renders so cookies, storage and memory growth cannot leak from one page
// into the next.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	once     sync.Once
	err      error
}

// launchSession starts a new browser instance with stability flags and
// connects to it.
func launchSession(headless bool, bin string) (*session, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(headless)
	if bin != "" {
		lnchr = lnchr.Bin(bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &session{browser: browser, launcher: lnchr}, nil
}

// Close shuts down the browser and kills the launcher process.
// Close is safe to call multiple times.
func (s *session) Close() error {
	s.once.Do(func() {
		s.err = s.browser.Close()
		s.launcher.Kill()
	})
	return s.err
}

