package builder

import "fmt"

// Format tells the wallet how to render an element's value.
type Format string

const (
	FormatNone     Format = ""
	FormatDateTime Format = "date-time"
	FormatDuration Format = "duration"
	FormatJPEG     Format = "jpeg"
	FormatPNG      Format = "png"
)

// Validate returns ErrUnknownFormat for anything but the Format constants.
func (f Format) Validate() error {
	switch f {
	case FormatNone, FormatDateTime, FormatDuration, FormatJPEG, FormatPNG:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
