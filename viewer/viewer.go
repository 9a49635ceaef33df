// Package viewer shows a rendered PBM image in the terminal.
package viewer

import (
	"bytes"
	"fmt"

	"github.com/dimonomid/cexpr/cstring"
	"github.com/dimonomid/cexpr/fractal"
	"github.com/dimonomid/cexpr/log"
	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/rivo/tview"
)

const (
	blockSet   = '█'
	blockUnset = ' '
)

type Params struct {
	// Title is shown in the frame border, e.g. the preset name.
	Title string

	Image *cstring.String

	Logger *log.Logger
}

type Viewer struct {
	params Params
	stats  fractal.ImageStats
	logger *log.Logger

	app       *tview.Application
	imageView *tview.TextView
	footer    *tview.TextView
	frame     *tview.Frame

	inverted bool
}

func New(params Params) (*Viewer, error) {
	stats, err := fractal.Stats(params.Image)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing image")
	}

	v := &Viewer{
		params: params,
		stats:  stats,
		logger: params.Logger.WithNamespaceAppended("viewer"),

		app: tview.NewApplication(),
	}

	v.imageView = tview.NewTextView()
	v.imageView.SetWrap(false)
	v.imageView.SetScrollable(true)

	v.footer = tview.NewTextView()
	v.footer.SetDynamicColors(true)
	v.footer.SetText(v.footerText())

	flex := tview.NewFlex().SetDirection(tview.FlexRow)
	flex.AddItem(v.imageView, 0, 1, true)
	flex.AddItem(v.footer, 1, 0, false)

	v.frame = tview.NewFrame(flex).SetBorders(0, 0, 0, 0, 0, 0)
	v.frame.SetBorder(true)
	v.frame.SetTitle(" " + params.Title + " ")

	v.imageView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			v.app.Stop()
			return nil

		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				v.app.Stop()
				return nil
			case 'i':
				v.inverted = !v.inverted
				if err := v.updateImage(); err != nil {
					v.logger.Errorf("Updating image: %s", err)
				}
				return nil
			}
		}

		return event
	})

	if err := v.updateImage(); err != nil {
		return nil, errors.Trace(err)
	}

	return v, nil
}

func (v *Viewer) footerText() string {
	return fmt.Sprintf(
		"%dx%d, [yellow]%.1f%%[-] in the set; [::b]i[::-] invert, [::b]q[::-] quit",
		v.stats.Width, v.stats.Height, v.stats.Coverage()*100,
	)
}

func (v *Viewer) updateImage() error {
	s, err := ToBlocks(v.params.Image, v.inverted)
	if err != nil {
		return errors.Trace(err)
	}

	v.imageView.SetText(s)
	return nil
}

// Run blocks until the user quits the viewer.
func (v *Viewer) Run() error {
	v.logger.Verbose1f("Starting viewer for %dx%d image", v.stats.Width, v.stats.Height)

	if err := v.app.SetRoot(v.frame, true).Run(); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// ToBlocks returns the body of a PBM image with pixels in the set drawn as
// full blocks and the others as spaces, or the other way around if inverted.
func ToBlocks(img *cstring.String, inverted bool) (string, error) {
	data := img.Slice()

	hdrEnd := bytes.IndexByte(data, '\n')
	if hdrEnd < 0 {
		return "", errors.Errorf("no header")
	}

	set, unset := blockSet, blockUnset
	if inverted {
		set, unset = unset, set
	}

	var buf bytes.Buffer
	for _, c := range data[hdrEnd+1:] {
		switch c {
		case '1':
			buf.WriteRune(set)
		case '0':
			buf.WriteRune(unset)
		case '\n':
			buf.WriteByte('\n')
		default:
			return "", errors.Errorf("invalid pixel %q", c)
		}
	}

	return buf.String(), nil
}
