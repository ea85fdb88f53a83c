package cmd

import (
	"fmt"
	"io"

	"Byte_String"

	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through every string operation",
		Long: `demo constructs, copies, moves, grows, concatenates and compares
strings, printing each result. It ends with a deliberate out-of-range
access, so it always exits with an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &demo{w: cmd.OutOrStdout(), opts: a.opts()}
			defer d.release()
			return d.run()
		},
	}
}

// demo keeps every string it creates so they can be released together.
type demo struct {
	w    io.Writer
	opts []Byte_String.Option
	live []*Byte_String.ByteString
}

func (d *demo) keep(s *Byte_String.ByteString, err error) (*Byte_String.ByteString, error) {
	if err != nil {
		return nil, err
	}
	d.live = append(d.live, s)
	return s, nil
}

func (d *demo) str(v string) (*Byte_String.ByteString, error) {
	return d.keep(Byte_String.FromString(v, d.opts...))
}

func (d *demo) release() {
	for _, s := range d.live {
		s.Release()
	}
	d.live = nil
}

func (d *demo) run() error {
	s1, err := d.keep(Byte_String.New(d.opts...))
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s1 empty: %t, len=%d\n", s1.IsEmpty(), s1.Len())

	s2, err := d.str("Hello")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s2: %s, len=%d\n", s2, s2.Len())

	s3, err := d.keep(s2.Clone())
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s3 (copy): %s\n", s3)
	if err := s3.SetAt(1, 'a'); err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s3 modified: %s\n", s3)
	fmt.Fprintf(d.w, "s2 remains: %s\n", s2)

	s4, err := d.keep(s3.Move())
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s4 (moved): %s\n", s4)
	fmt.Fprintf(d.w, "s3 after move: %q\n", s3.String())

	if err := s4.AssignString("New string"); err != nil {
		return err
	}
	if err := s4.PushBack('!'); err != nil {
		return err
	}
	fmt.Fprintf(d.w, "s4 after push_back: %s\n", s4)

	a, err := d.str("ABC")
	if err != nil {
		return err
	}
	b, err := d.str("DEF")
	if err != nil {
		return err
	}
	if err := a.Append(b); err != nil {
		return err
	}
	fmt.Fprintf(d.w, "a += b -> %s\n", a)
	if err := a.AppendString("GHI"); err != nil {
		return err
	}
	fmt.Fprintf(d.w, "a += \"GHI\" -> %s\n", a)

	c, err := d.keep(Byte_String.Concat(a, b))
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "c = a + b -> %s\n", c)
	c.Clear()
	fmt.Fprintf(d.w, "c after clear: %q, len=%d, cap=%d\n", c.String(), c.Len(), c.Cap())

	x, err := d.str("apple")
	if err != nil {
		return err
	}
	y, err := d.str("apricot")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "x == y: %t\n", x.Equal(y))
	fmt.Fprintf(d.w, "x != y: %t\n", x.NotEqual(y))
	fmt.Fprintf(d.w, "x < y: %t\n", x.Less(y))
	fmt.Fprintf(d.w, "x > y: %t\n", x.Greater(y))

	for _, pair := range [][2]string{{"abracadabra", "barbar"}, {"aaabx", "bbbxy"}} {
		l, err := d.str(pair[0])
		if err != nil {
			return err
		}
		r, err := d.str(pair[1])
		if err != nil {
			return err
		}
		u, err := d.keep(l.UniqueCharsWith(r))
		if err != nil {
			return err
		}
		fmt.Fprintf(d.w, "unique(%q, %q) -> %q\n", l.String(), r.String(), u.String())
	}

	// out of range on purpose
	if _, err := x.ByteAt(100); err != nil {
		return err
	}
	return nil
}
