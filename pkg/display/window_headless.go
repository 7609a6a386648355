//go:build headless

package display

func openWindow(int, int, Options) (Display, error) {
	return nil, ErrNoWindow
}
