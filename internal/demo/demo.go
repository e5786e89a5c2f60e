// Package demo overwrites a heap string through an exclusive handle and
// prints it through aliases taken afterwards.
package demo

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/v4rm4n/ownership/internal/borrow"
	"github.com/v4rm4n/ownership/internal/config"
)

// Replacement is what Overwrite stores, whatever the value held before.
const Replacement = "override!"

// Demo prints one overwritten value through a configured number of aliases.
type Demo struct {
	out     io.Writer
	log     logrus.FieldLogger
	initial string
	aliases int
}

// New returns a Demo writing to out. A nil log discards log entries.
func New(cfg config.Config, out io.Writer, log logrus.FieldLogger) *Demo {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Demo{
		out:     out,
		log:     log,
		initial: cfg.Initial,
		aliases: cfg.Aliases,
	}
}

// Initialize allocates the value with the default contents.
func Initialize() *borrow.Text { return InitializeWith(config.DefaultInitial) }

func InitializeWith(s string) *borrow.Text { return borrow.New(s) }

// Overwrite replaces the contents through m and hands back a shared handle
// to the same storage. m cannot be used afterwards.
func Overwrite(m *borrow.Mut) (borrow.Ref, error) {
	if err := m.Set(Replacement); err != nil {
		return borrow.Ref{}, fmt.Errorf("overwrite: %w", err)
	}
	return m.Release()
}

// Alias copies the handle, not the contents.
func Alias(r borrow.Ref) borrow.Ref { return r.Alias() }

// Emit writes the current contents and a newline to w.
func Emit(w io.Writer, r borrow.Ref) error {
	s, err := r.Get()
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// Run does initialize, overwrite, alias, then emits every alias in order.
func (d *Demo) Run() error {
	txt := InitializeWith(d.initial)
	d.log.WithField("step", "initialize").Debugf("allocated %q at %p", d.initial, txt.Ptr())

	m, err := txt.BorrowMut()
	if err != nil {
		return err
	}
	first, err := Overwrite(m)
	if err != nil {
		return err
	}
	d.log.WithField("step", "overwrite").Debugf("contents replaced with %q", Replacement)

	// only the latest alias is kept, so any count runs in constant memory
	r := first
	for i := 0; i < d.aliases; i++ {
		if i > 0 {
			r = Alias(r)
		}
		d.log.WithFields(logrus.Fields{"step": "emit", "alias": i + 1}).Debugf("storage %p", r.Ptr())
		if err := Emit(d.out, r); err != nil {
			return err
		}
	}
	return nil
}
