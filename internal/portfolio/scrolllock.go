package portfolio

import "sync"

// ScrollLock disables page scrolling while a modal is open.
type ScrollLock interface {
	Lock()
	Unlock()
}

// PageScrollLock counts holders so nested modals keep the page locked until the last
// one closes. OnChange fires on every locked/unlocked transition.
type PageScrollLock struct {
	OnChange func(locked bool)

	mu      sync.Mutex
	holders int
}

func (l *PageScrollLock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.holders++
	if l.holders == 1 && l.OnChange != nil {
		l.OnChange(true)
	}
}

func (l *PageScrollLock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holders == 0 {
		return
	}
	l.holders--
	if l.holders == 0 && l.OnChange != nil {
		l.OnChange(false)
	}
}

// Locked reports whether scrolling is currently disabled.
func (l *PageScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}
