package refiner

import "github.com/atotto/clipboard"

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardAvailable reports whether the host has a usable clipboard tool.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
